package credential

// Status indicates whether a credential participates in rotation.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// Credential is a single opaque secret used to authenticate one outbound
// call to the upstream API. Immutable after construction; runtime health
// and usage state live in the pool, never here.
type Credential struct {
	ID     string
	Secret string
	Status Status
}

// Active reports whether the credential is eligible for rotation.
func (c Credential) Active() bool {
	return c.Status == StatusActive
}

// Masked returns the display form of the secret: a short prefix plus an
// ellipsis, never the full value.
func (c Credential) Masked() string {
	return MaskSecret(c.Secret)
}

// MaskSecret truncates a secret for logs and reports.
func MaskSecret(secret string) string {
	if len(secret) <= 10 {
		return secret + "..."
	}
	return secret[:10] + "..."
}
