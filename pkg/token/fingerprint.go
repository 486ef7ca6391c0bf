package token

import (
	"fmt"

	"github.com/spaolacci/murmur3"
)

// Fingerprint returns a short stable identifier for tok that is safe to
// log. Empty tokens map to "none".
func Fingerprint(tok string) string {
	if tok == "" {
		return "none"
	}
	return fmt.Sprintf("fp_%016x", murmur3.Sum64([]byte(tok)))
}
