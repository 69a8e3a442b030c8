package server

import (
	"fmt"

	"keypool-go/internal/pool"
)

// SummaryLines renders the human-readable usage report, one line per
// credential, framed the way the scraper logs always did.
func SummaryLines(stats []pool.CredentialStat) []string {
	lines := make([]string, 0, len(stats)+2)
	lines = append(lines, "=== Key Rotation Statistics ===")
	for _, s := range stats {
		line := fmt.Sprintf("%s: %d requests, %d errors (%.1f%%)", s.MaskedID, s.Requests, s.Errors, s.ErrorRatePct)
		if s.Degraded {
			line += " [cooling down]"
		}
		lines = append(lines, line)
	}
	lines = append(lines, "=== End Statistics ===")
	return lines
}
