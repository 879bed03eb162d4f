package models

// GenerationResult, başarılı bir üretim isteğinin cevabı. ProjectID nil
// olabilir: proje kaydı başarısız olsa bile üretilen görsel teslim edilir.
type GenerationResult struct {
	InputImageURLs []string `json:"input_image_urls"`
	PrimaryURL     string   `json:"primary_image_url"`
	OutputImageURL string   `json:"output_image_url"`
	Prompt         string   `json:"prompt"`
	ProjectID      *uint    `json:"project_id"`
}
