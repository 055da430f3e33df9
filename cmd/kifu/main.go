// Command kifu reads an SGF record and shows the final position of every
// variation with its canonical hash and symmetries.
//
// With --gtp it plays on a fresh record over the Go Text Protocol instead.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gorgonia/kifu"
	"github.com/gorgonia/kifu/encoding/gif"
	"github.com/gorgonia/kifu/gtp"
	"github.com/gorgonia/kifu/internal/bootstrap"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := bootstrap.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfgPath, _ := fs.GetString("config")
	cfg, err := bootstrap.Setup(cfgPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if err := run(cfg, fs.Args(), logger); err != nil {
		logger.Error("kifu failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *bootstrap.Config, args []string, logger *zap.Logger) error {
	if cfg.GTP {
		e, err := gtp.New(cfg.Kifu(), "kifu", "1.0", nil, logger)
		if err != nil {
			return err
		}
		return e.Run(os.Stdin, os.Stdout)
	}

	var r io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		r = f
	}
	t, err := kifu.Read(r, cfg.Kifu(), kifu.WithLogger(logger))
	if err != nil {
		return err
	}

	if cfg.GIF != "" {
		if err := animate(cfg.GIF, t); err != nil {
			return err
		}
	}
	switch {
	case cfg.WriteSGF:
		return t.Write(os.Stdout)
	case cfg.Dot:
		_, err := io.WriteString(os.Stdout, t.ToDot())
		return errors.WithStack(err)
	}
	return summarize(os.Stdout, t)
}

func animate(path string, t *kifu.GameTree) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	enc := gif.NewGifEncoder(1200, 1200)
	enc.Writer = f
	if err := enc.EncodeLine(t.MainLine()); err != nil {
		return err
	}
	return enc.Flush()
}

// summarize prints the last position of every variation, main line first.
func summarize(w io.Writer, t *kifu.GameTree) error {
	leaves := t.Leaves()
	kifu.SortNodes(leaves)
	for _, n := range leaves {
		b := n.Board()
		if _, err := fmt.Fprintf(w, "node %d, move %d, %v to play\n%v\nhash %016x symmetries %v\n\n",
			n.ID(), n.MoveNumber(), n.ToPlay(), n.Goban(), uint64(b.CanonicalHash()), b.SymmetryGroup()); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
