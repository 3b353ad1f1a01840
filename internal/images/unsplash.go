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
	// UnsplashBaseURL is the default Unsplash API endpoint.
	UnsplashBaseURL = "https://api.unsplash.com"
)

// UnsplashConfig holds the configuration for the Unsplash client.
type UnsplashConfig struct {
	AccessKey string
	BaseURL   string
	Timeout   time.Duration
}

// Unsplash searches the Unsplash photo API.
type Unsplash struct {
	accessKey string
	baseURL   string
	client    *http.Client
}

type unsplashResponse struct {
	Results []struct {
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

// NewUnsplash creates a new Unsplash search client.
func NewUnsplash(cfg UnsplashConfig) (*Unsplash, error) {
	accessKey := cfg.AccessKey
	if accessKey == "" {
		accessKey = os.Getenv("UNSPLASH_ACCESS_KEY")
	}
	if accessKey == "" {
		return nil, errors.New("Unsplash access key not configured (set UNSPLASH_ACCESS_KEY or provide via config)")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = UnsplashBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Unsplash{
		accessKey: accessKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the searcher identifier.
func (u *Unsplash) Name() string {
	return "unsplash"
}

// Search queries the photo search endpoint.
func (u *Unsplash) Search(ctx context.Context, query string, limit int) ([]content.ImageAsset, error) {
	if limit <= 0 {
		limit = 1
	}

	endpoint := u.baseURL + "/search/photos?query=" + url.QueryEscape(query) +
		"&per_page=" + strconv.Itoa(limit) + "&orientation=landscape"
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	assets := make([]content.ImageAsset, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		alt := r.AltDescription
		if alt == "" {
			alt = query
		}
		assets = append(assets, content.ImageAsset{
			URL:         r.URLs.Regular,
			Thumb:       r.URLs.Thumb,
			Alt:         alt,
			Attribution: "Photo by " + r.User.Name + " on Unsplash",
		})
	}
	return assets, nil
}
