package sgf

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var charsetRe = regexp.MustCompile(`(?:^|[;\]\s])CA\s*\[([^\]]*)\]`)

// charsetOf returns the charset named by the first CA property, or "".
func charsetOf(data []byte) string {
	m := charsetRe.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(string(m[1]))
}

// decode converts data in the named charset to UTF-8. Unknown charsets are
// reported with ok set to false and the data left as it is.
func decode(data []byte, charset string) (retVal []byte, ok bool, err error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return data, true, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return data, false, nil
	}
	reader := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	if retVal, err = io.ReadAll(reader); err != nil {
		return nil, true, errors.Wrapf(err, "Cannot decode record from %s", charset)
	}
	return retVal, true, nil
}
