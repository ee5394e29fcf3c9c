package aladin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/readingroadmap/bestsellers/internal/config"
)

const (
	queryType    = "Bestseller"
	searchTarget = "Foreign"
	outputFormat = "js"
	apiVersion   = "20131101"
)

// ErrAPI is returned when Aladin answers with an error envelope instead of an item list
var ErrAPI = errors.New("aladin API error")

// Client is an Aladin TTB item list client
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// RawItem is one entry of the item list. Every field is optional.
type RawItem struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN13      string `json:"isbn13"`
	Description string `json:"description"`
}

// ListQuery selects a single page of a category's bestseller list
type ListQuery struct {
	CategoryID int
	MaxResults int
	Start      int
}

// Result is the outcome of fetching one category. Err is nil on success.
type Result struct {
	Category config.Category
	Items    []RawItem
	Err      error
}

// OK reports whether the fetch succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

type itemListResponse struct {
	Item         []RawItem `json:"item"`
	ErrorCode    int       `json:"errorCode"`
	ErrorMessage string    `json:"errorMessage"`
}

// NewClient creates a new Aladin client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch retrieves one page of bestsellers for a category and wraps the
// outcome in a Result so the caller decides what a failure means.
func (c *Client) Fetch(ctx context.Context, cat config.Category, maxResults, start int) Result {
	items, err := c.FetchBestsellers(ctx, ListQuery{
		CategoryID: cat.CategoryID,
		MaxResults: maxResults,
		Start:      start,
	})
	return Result{Category: cat, Items: items, Err: err}
}

// FetchBestsellers performs a single item list request
func (c *Client) FetchBestsellers(ctx context.Context, q ListQuery) ([]RawItem, error) {
	reqURL, err := c.listURL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Aladin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Aladin API returned status %d: %s", resp.StatusCode, string(body))
	}

	var listResp itemListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode Aladin response: %w", err)
	}

	if listResp.ErrorCode != 0 {
		return nil, fmt.Errorf("%w %d: %s", ErrAPI, listResp.ErrorCode, listResp.ErrorMessage)
	}

	return listResp.Item, nil
}

func (c *Client) listURL(q ListQuery) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	if q.MaxResults <= 0 {
		q.MaxResults = config.DefaultMaxResults
	}
	if q.Start <= 0 {
		q.Start = config.DefaultStart
	}

	params := url.Values{}
	params.Set("ttbkey", c.APIKey)
	params.Set("QueryType", queryType)
	params.Set("MaxResults", strconv.Itoa(q.MaxResults))
	params.Set("start", strconv.Itoa(q.Start))
	params.Set("SearchTarget", searchTarget)
	params.Set("CategoryId", strconv.Itoa(q.CategoryID))
	params.Set("output", outputFormat)
	params.Set("Version", apiVersion)
	u.RawQuery = params.Encode()

	return u.String(), nil
}
