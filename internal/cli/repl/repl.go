package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/sharepay/sharepay-go/internal/telemetry/logger"
)

// DefaultPrompt is shown before each line.
const DefaultPrompt = "sharepay> "

// Executor runs one split command line.
type Executor func(ctx context.Context, args []string) error

// Config configures a REPL.
type Config struct {
	In       io.Reader
	Out      io.Writer
	Prompt   string
	History  *History
	Commands []string
	Execute  Executor
	// OnError reports a failed command. Default: "error: <err>".
	OnError func(w io.Writer, err error)
	Logger  logger.Logger
}

// REPL is the read-eval-print loop.
type REPL struct {
	cfg       Config
	completer *Completer
	history   *History
}

// New creates a REPL.
func New(cfg Config) *REPL {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.History == nil {
		cfg.History = NewHistory("", 0)
	}
	if cfg.OnError == nil {
		cfg.OnError = func(w io.Writer, err error) { fmt.Fprintf(w, "error: %v\n", err) }
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	return &REPL{
		cfg:       cfg,
		completer: NewCompleter(cfg.Commands),
		history:   cfg.History,
	}
}

// History returns the session history.
func (r *REPL) History() *History {
	return r.history
}

// Run reads and executes lines until exit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		r.cfg.Logger.Warn("history not loaded", "error", err)
	}

	lr := r.reader()
	defer lr.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.cfg.Out)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.history.Add(line)

		switch line {
		case "exit", "quit":
			return nil
		case "history":
			for i, e := range r.history.Entries() {
				fmt.Fprintf(r.cfg.Out, "%5d  %s\n", i+1, e)
			}
			continue
		}

		args, err := SplitArgs(line)
		if err != nil {
			r.cfg.OnError(r.cfg.Out, err)
			continue
		}

		lr.Pause()
		err = r.cfg.Execute(ctx, args)
		lr.Resume()
		if err != nil {
			r.cfg.OnError(r.cfg.Out, err)
		}
	}
}

func (r *REPL) reader() lineReader {
	if f, ok := r.cfg.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tr, err := newTermReader(f, r.cfg.Out, r.cfg.Prompt, r.completer)
		if err == nil {
			return tr
		}
		r.cfg.Logger.Debug("line editing unavailable", "error", err)
	}
	return &plainReader{r: bufio.NewReader(r.cfg.In), out: r.cfg.Out, prompt: r.cfg.Prompt}
}

// SplitArgs splits a command line on whitespace, honouring single and
// double quotes and backslash escapes.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)
	for _, ch := range line {
		switch {
		case escaped:
			cur.WriteRune(ch)
			escaped = false
		case ch == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				cur.WriteRune(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			inArg = true
		case ch == ' ' || ch == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(ch)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
