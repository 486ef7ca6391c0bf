package repl

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineReader yields one input line at a time.
type lineReader interface {
	ReadLine() (string, error)
	// Pause returns the terminal to normal mode while a command runs.
	Pause()
	Resume()
	Close()
}

// SharedInput wraps in so that the shell and every prompt read from one
// buffer. Terminals are returned unchanged.
func SharedInput(in io.Reader) io.Reader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return in
	}
	if br, ok := in.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(in)
}

// plainReader reads lines from a non-terminal input.
type plainReader struct {
	r      *bufio.Reader
	out    io.Writer
	prompt string
}

func (p *plainReader) ReadLine() (string, error) {
	io.WriteString(p.out, p.prompt)
	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *plainReader) Pause()  {}
func (p *plainReader) Resume() {}
func (p *plainReader) Close()  {}

// termReader edits lines in raw mode with tab completion.
type termReader struct {
	fd    int
	state *term.State
	t     *term.Terminal
}

func newTermReader(in *os.File, out io.Writer, prompt string, c *Completer) (*termReader, error) {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, prompt)
	t.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' || pos != len(line) {
			return "", 0, false
		}
		ext, matches := c.Extend(line)
		if len(matches) > 1 && ext == line {
			io.WriteString(t, "\r\n"+strings.Join(matches, "  ")+"\r\n")
		}
		return ext, len(ext), true
	}
	return &termReader{fd: fd, state: state, t: t}, nil
}

func (r *termReader) ReadLine() (string, error) {
	return r.t.ReadLine()
}

func (r *termReader) Pause() {
	_ = term.Restore(r.fd, r.state)
}

func (r *termReader) Resume() {
	if st, err := term.MakeRaw(r.fd); err == nil {
		r.state = st
	}
}

func (r *termReader) Close() {
	_ = term.Restore(r.fd, r.state)
}
