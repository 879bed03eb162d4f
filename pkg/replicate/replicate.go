package replicate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.replicate.com/v1"

// Üretim parametreleri sabittir, istek başına hesaplanmaz.
var defaultParams = map[string]interface{}{
	"refine":              "expert_ensemble_refiner",
	"scheduler":           "K_EULER",
	"lora_scale":          0.6,
	"num_outputs":         1,
	"guidance_scale":      7.5,
	"apply_watermark":     false,
	"high_noise_frac":     0.8,
	"negative_prompt":     "ugly, distorted, low quality, blurry",
	"prompt_strength":     0.8,
	"num_inference_steps": 40,
}

type Client struct {
	apiToken     string
	modelVersion string
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  interface{}     `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func NewClient(apiToken, modelVersion string) *Client {
	return &Client{
		apiToken:     apiToken,
		modelVersion: modelVersion,
		baseURL:      defaultBaseURL,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
		pollInterval: 2 * time.Second,
	}
}

// Generate, img2img prediction'ı başlatır ve tamamlanana kadar bekler.
// Model çıktısı olduğu gibi (raw JSON) döndürülür, şekil doğrulaması
// çağıran tarafta yapılır.
func (c *Client) Generate(imageURL, prompt string) (json.RawMessage, error) {
	input := map[string]interface{}{
		"image":  imageURL,
		"prompt": prompt,
	}
	for k, v := range defaultParams {
		input[k] = v
	}

	body, err := json.Marshal(map[string]interface{}{
		"version": c.modelVersion,
		"input":   input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	pred, err := c.do(req)
	if err != nil {
		return nil, err
	}

	// Prediction tamamlanana kadar poll et
	for pred.Status == "starting" || pred.Status == "processing" {
		time.Sleep(c.pollInterval)

		getReq, err := http.NewRequest(http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return nil, err
		}
		getReq.Header.Set("Authorization", "Token "+c.apiToken)

		pred, err = c.do(getReq)
		if err != nil {
			return nil, err
		}
	}

	if pred.Status != "succeeded" {
		return nil, fmt.Errorf("prediction %s ended with status %q: %v", pred.ID, pred.Status, pred.Error)
	}

	return pred.Output, nil
}

func (c *Client) do(req *http.Request) (*prediction, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("replicate API returned status %d", resp.StatusCode)
	}

	var pred prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &pred, nil
}
