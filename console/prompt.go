package console

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// prompt prints a label and reads one trimmed line. Exhausted input flips
// the eof flag so menu loops unwind rather than re-prompting forever.
func (c *Console) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// promptInt64 reads a positive integer ID, returning ok=false on bad input.
func (c *Console) promptInt64(label string) (int64, bool) {
	raw := c.prompt(label)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(c.out, "Invalid ID: %s\n", raw)
		return 0, false
	}
	return id, true
}

// promptInt reads a non-negative integer.
func (c *Console) promptInt(label string) (int, bool) {
	raw := c.prompt(label)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		fmt.Fprintf(c.out, "Invalid number: %s\n", raw)
		return 0, false
	}
	return n, true
}

// promptChoice reads a numeric menu choice.
func (c *Console) promptChoice() int {
	raw := c.prompt("> ")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

// readPassword reads a password with masking when stdin is a terminal, and
// falls back to a plain line read otherwise so piped input and tests work.
func (c *Console) readPassword(label string) (string, error) {
	if c.interactive && term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprint(c.out, label)
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(c.out) // newline after masked input
		return strings.TrimSpace(string(bytePassword)), nil
	}
	return c.prompt(label), nil
}

// isStdin reports whether r is the process standard input.
func isStdin(f any) bool {
	file, ok := f.(*os.File)
	return ok && file == os.Stdin
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
