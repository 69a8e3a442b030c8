package pool

import (
	"time"

	"keypool-go/internal/credential"
)

// CredentialStat is one row of the observability snapshot. Rendering into
// human-readable lines is the caller's concern; the pool only exposes the
// structured values.
type CredentialStat struct {
	ID           string  `json:"id"`
	MaskedID     string  `json:"masked_id"`
	Requests     int64   `json:"requests"`
	Errors       int64   `json:"errors"`
	ErrorRatePct float64 `json:"error_rate_pct"`
	AvgLatencyMS int64   `json:"avg_latency_ms"`
	LastError    string  `json:"last_error,omitempty"`
	Degraded     bool    `json:"degraded"`
}

// snapshot builds stats for the given credentials in order. Credentials with
// no recorded usage still get a zero row.
func (t *healthTracker) snapshot(creds []credential.Credential) []CredentialStat {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	out := make([]CredentialStat, 0, len(creds))
	for _, c := range creds {
		stat := CredentialStat{
			ID:       c.ID,
			MaskedID: c.Masked(),
		}
		if h := t.keys[c.ID]; h != nil {
			stat.Requests = h.totalRequests
			stat.Errors = h.totalErrors
			if h.totalRequests > 0 {
				stat.ErrorRatePct = float64(h.totalErrors) / float64(h.totalRequests) * 100
				stat.AvgLatencyMS = (h.totalLatency / time.Duration(h.totalRequests)).Milliseconds()
			}
			stat.LastError = h.lastError
			stat.Degraded = !h.disabledUntil.IsZero() && now.Before(h.disabledUntil)
		}
		out = append(out, stat)
	}
	return out
}
