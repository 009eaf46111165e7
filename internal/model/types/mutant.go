package types

// MutantRequest only checks the envelope; grid rules are enforced by dna.Validate so that
// malformed grids are reported with their specific reason.
type MutantRequest struct {
	DNA []string `json:"dna" validate:"required"`
}
