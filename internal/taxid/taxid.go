// Package taxid validates Brazilian tax identifiers. An 11-character
// input is treated as a CPF and checked locally with the weighted
// check-digit algorithm; a 14-character input is treated as a CNPJ and
// verified against an external registry. The raw input length alone
// decides the dispatch; punctuation is stripped only on the 11-digit
// path. A stricter format detector can replace the Validator without
// touching callers.
package taxid

import "context"

// ValidationError carries the user-facing reason an identifier was
// rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validator dispatches raw tax identifiers to the checksum or registry
// path based on length.
type Validator struct {
	registry RegistryClient
}

// NewValidator constructs a Validator backed by the given registry
// client.
func NewValidator(registry RegistryClient) *Validator {
	return &Validator{registry: registry}
}

// Validate accepts or rejects a raw tax identifier. A nil return means
// the identifier is valid; a *ValidationError explains a rejection.
func (v *Validator) Validate(ctx context.Context, raw string) error {
	switch len(raw) {
	case 14:
		return v.registry.Verify(ctx, raw)
	case 11:
		if !validCPF(stripNonDigits(raw)) {
			return &ValidationError{Reason: "CPF is invalid."}
		}
		return nil
	default:
		return &ValidationError{Reason: "CPF must contain 11 digits or CNPJ 14 digits."}
	}
}
