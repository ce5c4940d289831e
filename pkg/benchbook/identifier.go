package benchbook

import (
	"strings"
	"time"
)

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DateCode formats a time as the fixed-width day code used in experiment
// identifiers, e.g. 14 June 2025 -> "250614".
func DateCode(t time.Time) string {
	return t.Format("060102")
}

// NextID computes the identifier for a new experiment note on the given day.
// It counts the existing basenames that start with "E"+date and picks the
// letter at that position, so same-day experiments are issued A, B, C, ...
// in order.
//
// Past 26 same-day notes the suffix clamps to Z, meaning the 27th note
// collides with the 26th. That matches the historical behavior of the
// notebook scripts and is kept on purpose; see DESIGN.md.
func NextID(date string, basenames []string) string {
	prefix := "E" + date

	n := 0
	for _, name := range basenames {
		if strings.HasPrefix(name, prefix) {
			n++
		}
	}

	if n >= len(suffixAlphabet) {
		n = len(suffixAlphabet) - 1
	}

	return prefix + string(suffixAlphabet[n])
}
