package v1

type MutantResponse struct {
	IsMutant bool `json:"isMutant"`
}
