package filesapimodels

type FileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CandidateID string `json:"candidate_id"`
	ContentType string `json:"content_type"`
}
