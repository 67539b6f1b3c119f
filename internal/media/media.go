// Package media looks up stock video and photo URLs used to fill empty hero
// slots. Lookups are strictly best-effort: every failure comes back as an
// error the caller logs and swallows, never as a broken page.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultVideoAPI = "https://api.pexels.com/videos/search"
	defaultPhotoAPI = "https://api.pexels.com/v1/search"
	defaultTimeout  = 10 * time.Second
)

// Fetcher resolves a search query to a single media URL. An empty result
// with a nil error does not happen; failures always carry the reason.
type Fetcher interface {
	VideoURL(ctx context.Context, query string) (string, error)
	ImageURL(ctx context.Context, query string) (string, error)
}

// PexelsClient talks to a Pexels-compatible stock media API.
type PexelsClient struct {
	apiKey   string
	videoAPI string
	photoAPI string
	client   *http.Client
}

func NewPexelsClient(apiKey string) (*PexelsClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("media api key is required")
	}
	return &PexelsClient{
		apiKey:   apiKey,
		videoAPI: defaultVideoAPI,
		photoAPI: defaultPhotoAPI,
		client:   &http.Client{Timeout: defaultTimeout},
	}, nil
}

type videoSearchResponse struct {
	Videos []struct {
		VideoFiles []struct {
			Quality string `json:"quality"`
			Link    string `json:"link"`
		} `json:"video_files"`
	} `json:"videos"`
}

type photoSearchResponse struct {
	Photos []struct {
		Src struct {
			Large2x string `json:"large2x"`
			Large   string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// VideoURL returns the best file of the first hit, preferring HD over SD.
func (c *PexelsClient) VideoURL(ctx context.Context, query string) (string, error) {
	var result videoSearchResponse
	if err := c.search(ctx, c.videoAPI, query, &result); err != nil {
		return "", err
	}
	if len(result.Videos) == 0 {
		return "", fmt.Errorf("no videos found for %q", query)
	}

	var sd string
	for _, file := range result.Videos[0].VideoFiles {
		switch file.Quality {
		case "hd":
			return file.Link, nil
		case "sd":
			if sd == "" {
				sd = file.Link
			}
		}
	}
	if sd != "" {
		return sd, nil
	}
	return "", fmt.Errorf("video hit for %q has no usable files", query)
}

// ImageURL returns the first hit's large rendition.
func (c *PexelsClient) ImageURL(ctx context.Context, query string) (string, error) {
	var result photoSearchResponse
	if err := c.search(ctx, c.photoAPI, query, &result); err != nil {
		return "", err
	}
	if len(result.Photos) == 0 {
		return "", fmt.Errorf("no photos found for %q", query)
	}
	src := result.Photos[0].Src
	if src.Large2x != "" {
		return src.Large2x, nil
	}
	if src.Large != "" {
		return src.Large, nil
	}
	return "", fmt.Errorf("photo hit for %q has no usable renditions", query)
}

func (c *PexelsClient) search(ctx context.Context, endpoint, query string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build media request: %w", err)
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call media api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media api returned status %d", resp.StatusCode)
	}
	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read media response: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode media response: %w", err)
	}
	return nil
}
