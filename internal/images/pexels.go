package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

const (
	// PexelsBaseURL is the default Pexels API endpoint.
	PexelsBaseURL = "https://api.pexels.com/v1"
)

// PexelsConfig holds the configuration for the Pexels client.
type PexelsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Pexels searches the Pexels photo API.
type Pexels struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type pexelsResponse struct {
	Photos []struct {
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		Src          struct {
			Large string `json:"large"`
			Tiny  string `json:"tiny"`
		} `json:"src"`
	} `json:"photos"`
}

// NewPexels creates a new Pexels search client.
func NewPexels(cfg PexelsConfig) (*Pexels, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("PEXELS_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("Pexels API key not configured (set PEXELS_API_KEY or provide via config)")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = PexelsBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Pexels{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the searcher identifier.
func (p *Pexels) Name() string {
	return "pexels"
}

// Search queries the photo search endpoint.
func (p *Pexels) Search(ctx context.Context, query string, limit int) ([]content.ImageAsset, error) {
	if limit <= 0 {
		limit = 1
	}

	endpoint := p.baseURL + "/search?query=" + url.QueryEscape(query) +
		"&per_page=" + strconv.Itoa(limit) + "&orientation=landscape"
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	assets := make([]content.ImageAsset, 0, len(apiResp.Photos))
	for _, photo := range apiResp.Photos {
		alt := photo.Alt
		if alt == "" {
			alt = query
		}
		assets = append(assets, content.ImageAsset{
			URL:         photo.Src.Large,
			Thumb:       photo.Src.Tiny,
			Alt:         alt,
			Attribution: "Photo by " + photo.Photographer + " on Pexels",
		})
	}
	return assets, nil
}
