package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the banner timer goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestConsole_BannerPlain(t *testing.T) {
	var buf syncBuffer
	c := NewConsole(&buf)

	if c.IsTerminal() {
		t.Fatal("buffer detected as terminal")
	}

	c.Banner(BannerSuccess, "Trip created", time.Millisecond)
	c.Banner(BannerError, "Amount must be positive", 0)
	time.Sleep(20 * time.Millisecond)

	want := "✓ Trip created\n✗ Amount must be positive\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConsole_BannerAutoDismiss(t *testing.T) {
	var buf syncBuffer
	c := NewConsole(&buf)
	c.SetTerminal(true, false)

	c.Banner(BannerSuccess, "Saved", 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	if got := buf.String(); !strings.HasSuffix(got, "\033[1A\033[2K\r") {
		t.Errorf("banner not erased: %q", got)
	}
}

func TestConsole_BannerKeptAfterOtherOutput(t *testing.T) {
	var buf syncBuffer
	c := NewConsole(&buf)
	c.SetTerminal(true, false)

	c.Banner(BannerSuccess, "Saved", 10*time.Millisecond)
	c.Write([]byte("table row\n"))
	time.Sleep(50 * time.Millisecond)

	if strings.Contains(buf.String(), "\033[1A") {
		t.Errorf("banner erased over newer output: %q", buf.String())
	}
}

func TestConsole_BannerCancel(t *testing.T) {
	var buf syncBuffer
	c := NewConsole(&buf)
	c.SetTerminal(true, false)

	cancel := c.Banner(BannerError, "Failed", 10*time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	if strings.Contains(buf.String(), "\033[1A") {
		t.Errorf("cancelled banner erased: %q", buf.String())
	}
}

func TestConsole_Colour(t *testing.T) {
	var buf syncBuffer
	c := NewConsole(&buf)
	c.SetTerminal(true, true)

	c.Banner(BannerError, "boom", 0)
	if got := buf.String(); got != "\033[31m✗ boom\033[0m\n" {
		t.Errorf("output = %q", got)
	}
}
