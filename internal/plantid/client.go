package plantid

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Suggestion is one ranked species candidate with its care metadata.
type Suggestion struct {
	PlantName   string   `json:"plant_name"`
	Probability float64  `json:"probability"`
	CommonNames []string `json:"common_names,omitempty"`
	WikiURL     string   `json:"wiki_url,omitempty"`
	Watering    string   `json:"watering,omitempty"`
	Sunlight    string   `json:"sunlight,omitempty"`
}

// Recognizer is the plant-recognition collaborator.
type Recognizer interface {
	Identify(ctx context.Context, image []byte) ([]Suggestion, error)
}

var ErrNotConfigured = errors.New("plant recognition API key not configured")

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type identifyRequest struct {
	Images       []string `json:"images"`
	PlantDetails []string `json:"plant_details"`
}

type identifyResponse struct {
	Suggestions []struct {
		PlantName    string  `json:"plant_name"`
		Probability  float64 `json:"probability"`
		PlantDetails struct {
			CommonNames []string `json:"common_names"`
			WikiURL     string   `json:"url"`
			Watering    string   `json:"watering"`
			Sunlight    string   `json:"sunlight"`
		} `json:"plant_details"`
	} `json:"suggestions"`
}

// Identify submits an image and returns the ranked species suggestions.
func (c *Client) Identify(ctx context.Context, image []byte) ([]Suggestion, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	reqBody := identifyRequest{
		Images:       []string{base64.StdEncoding.EncodeToString(image)},
		PlantDetails: []string{"common_names", "url", "watering"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/identify", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition API returned status %d", res.StatusCode)
	}

	var body identifyResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode recognition response: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(body.Suggestions))
	for _, s := range body.Suggestions {
		suggestions = append(suggestions, Suggestion{
			PlantName:   s.PlantName,
			Probability: s.Probability,
			CommonNames: s.PlantDetails.CommonNames,
			WikiURL:     s.PlantDetails.WikiURL,
			Watering:    s.PlantDetails.Watering,
			Sunlight:    s.PlantDetails.Sunlight,
		})
	}

	return suggestions, nil
}
