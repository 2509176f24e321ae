package commands

import (
	"fmt"
	"strings"
)

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return strings.TrimSpace(string(r[:maxLen-3])) + "..."
}

func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", name, n)
	}
	return nil
}
