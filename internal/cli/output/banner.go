package output

import (
	"time"
)

// BannerKind selects the banner style.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// DefaultAutoDismiss is how long a banner stays before it is erased.
const DefaultAutoDismiss = 5 * time.Second

// Banner prints an alert line. On a terminal the line is erased after
// autoDismiss if nothing else was printed in the meantime; zero keeps it.
// The returned function cancels the pending erase.
func (c *Console) Banner(kind BannerKind, msg string, autoDismiss time.Duration) (cancel func()) {
	icon, colour := "✓", "32"
	if kind == BannerError {
		icon, colour = "✗", "31"
	}

	mark := c.writeMarked([]byte(c.paint(colour, icon+" "+msg) + "\n"))

	if !c.IsTerminal() || autoDismiss <= 0 {
		return func() {}
	}
	timer := time.AfterFunc(autoDismiss, func() {
		c.eraseIfLast(mark)
	})
	return func() { timer.Stop() }
}

// Success prints a success banner with the default auto-dismiss.
func (c *Console) Success(msg string) {
	c.Banner(BannerSuccess, msg, DefaultAutoDismiss)
}

// Fail prints an error banner with the default auto-dismiss.
func (c *Console) Fail(msg string) {
	c.Banner(BannerError, msg, DefaultAutoDismiss)
}
