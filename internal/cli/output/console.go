package output

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Console is the terminal the CLI writes to. It serializes writes and
// counts them, which lets a banner tell whether anything was printed
// after it.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	tty   bool
	color bool
	seq   uint64
}

// NewConsole wraps w. Colours and in-place erasing are enabled only when
// w is a terminal.
func NewConsole(w io.Writer) *Console {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Console{w: w, tty: tty, color: tty && os.Getenv("NO_COLOR") == ""}
}

// Write implements io.Writer.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.w.Write(p)
}

// IsTerminal reports whether the console is interactive.
func (c *Console) IsTerminal() bool {
	return c.tty
}

// SetTerminal overrides terminal detection.
func (c *Console) SetTerminal(tty, color bool) {
	c.mu.Lock()
	c.tty = tty
	c.color = color
	c.mu.Unlock()
}

// writeMarked writes p and returns the write sequence number it got.
func (c *Console) writeMarked(p []byte) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.w.Write(p)
	return c.seq
}

// eraseIfLast erases the previous line when nothing was written since mark.
func (c *Console) eraseIfLast(mark uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != mark {
		return false
	}
	c.seq++
	io.WriteString(c.w, "\033[1A\033[2K\r")
	return true
}

func (c *Console) paint(code, s string) string {
	if !c.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}
