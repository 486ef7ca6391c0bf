package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks msg as a yes/no question. Only an explicit y or yes
// confirms; EOF and anything else decline.
func Confirm(in io.Reader, out io.Writer, msg string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", msg)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
