// Package gtp drives a game record with the Go Text Protocol. Every move played
// becomes a node of the record, and undo restores the record as it was.
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorgonia/kifu"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// snapshot is an entry of the undo stack.
type snapshot struct {
	memento *kifu.Memento
	current *kifu.Node
}

type Engine struct {
	conf    kifu.Config
	opts    []kifu.Option
	tree    *kifu.GameTree
	current *kifu.Node
	history []snapshot

	known map[string]Command

	ch   chan string
	ret  chan string
	done bool

	logger        *zap.Logger
	name, version string
}

// New creates an engine playing on a fresh record. The options are passed on to
// every record the engine creates.
func New(conf kifu.Config, name, version string, known map[string]Command, logger *zap.Logger, opts ...kifu.Option) (*Engine, error) {
	if known == nil {
		known = StandardLib()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		conf:    conf,
		opts:    append(opts, kifu.WithLogger(logger)),
		known:   known,
		logger:  logger,
		name:    name,
		version: version,
	}
	if err := e.reset(conf.Size); err != nil {
		return nil, err
	}
	return e, nil
}

// Tree returns the record being played.
func (e *Engine) Tree() *kifu.GameTree { return e.tree }

// Current returns the node of the last move played.
func (e *Engine) Current() *kifu.Node { return e.current }

// reset starts a new record of the given size and forgets the undo stack.
func (e *Engine) reset(size int) error {
	conf := e.conf
	conf.Size = size
	t, err := kifu.New(conf, e.opts...)
	if err != nil {
		return err
	}
	e.conf, e.tree, e.current, e.history = conf, t, t.Root(), nil
	return nil
}

// checkpoint pushes the current state of the record on the undo stack.
func (e *Engine) checkpoint() {
	e.history = append(e.history, snapshot{memento: e.tree.CreateMemento(), current: e.current})
}

func (e *Engine) rollback() error {
	if len(e.history) == 0 {
		return errors.New("cannot undo")
	}
	last := e.history[len(e.history)-1]
	if err := e.tree.SetMemento(last.memento); err != nil {
		return err
	}
	e.history = e.history[:len(e.history)-1]
	e.current = last.current
	return nil
}

func (e *Engine) Start() (input, output chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		id, x, args, err := e.parse(cmd)
		if x == nil && err == nil {
			continue
		}
		if err != nil {
			e.ret <- handleErr(id, err)
			continue
		}
		id, result, err := x.Do(id, args, e)
		if err != nil {
			e.logger.Debug("command failed", zap.String("command", cmd), zap.Error(err))
		}
		e.ret <- handleResult(id, result, err)
		if e.done {
			return
		}
	}
}

// Run answers the commands read from r on w until quit or the end of the input.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	in, out := e.Start()
	defer close(in)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		in <- line
		if _, err := io.WriteString(w, <-out); err != nil {
			return errors.WithStack(err)
		}
		if e.done {
			return nil
		}
	}
	return errors.WithStack(scanner.Err())
}

// refer to this
// https://www.lysator.liu.se/%7Egunnar/gtp/gtp2-spec-draft2/gtp2-spec.html#SECTION00030000000000000000
func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return -1, nil, nil, nil
	}
	if id, err = strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		tokens = tokens[1:]
	} else {
		// set err to nil because ID is optional
		err = nil
		id = -1
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil // GNUGo some how does nothing when there are no tokens left. An ID may be passed in but it'll be ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

func preprocess(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}
