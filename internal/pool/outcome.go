package pool

// Outcome classifies one completed upstream API call.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeError       Outcome = "error"
	OutcomeTimeout     Outcome = "timeout"
)

// normalize folds unrecognized labels into OutcomeError. A worker is never
// blocked from reporting because of an unexpected outcome value.
func (o Outcome) normalize() Outcome {
	switch o {
	case OutcomeSuccess, OutcomeRateLimited, OutcomeError, OutcomeTimeout:
		return o
	}
	return OutcomeError
}

// failed reports whether the outcome counts as an error for health purposes.
// Rate limits and timeouts do; successes do not.
func (o Outcome) failed() bool {
	return o != OutcomeSuccess
}
