package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

// Client looks scans up on a MediaWiki API (action=query&prop=imageinfo)
type Client struct {
	BaseURL    string
	FilePrefix string
	httpClient *http.Client
}

// NewClient creates a new API client. baseURL points at api.php
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		FilePrefix: "File",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type imageInfoResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			ImageInfo []struct {
				Width     int    `json:"width"`
				Height    int    `json:"height"`
				PageCount int    `json:"pagecount"`
				Mime      string `json:"mime"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// FindResourceByName implements resource.Repository. Each call is a single
// request; there is no retry.
func (c *Client) FindResourceByName(ctx context.Context, name string) (*resource.ScanResource, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "size|mime")
	params.Set("titles", c.FilePrefix+":"+name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create imageinfo request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch imageinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("imageinfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var info imageInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode imageinfo response: %w", err)
	}

	if len(info.Query.Pages) == 0 {
		return nil, nil
	}
	page := info.Query.Pages[0]
	if page.Missing || page.Invalid || len(page.ImageInfo) == 0 {
		return nil, nil
	}

	ii := page.ImageInfo[0]
	record := IndexRecord{
		Name:      name,
		PageCount: ii.PageCount,
		MediaType: ii.Mime,
		Width:     ii.Width,
	}
	return record.Resource(), nil
}
