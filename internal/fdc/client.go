package fdc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutricalc/internal/config"
	"nutricalc/internal/model"

	"github.com/rs/zerolog"
)

// searchDataTypes restricts search to the curated datasets plus branded foods.
const searchDataTypes = "Foundation,SR Legacy,Branded"

// maxBodyBytes bounds how much of an FDC response is read.
const maxBodyBytes = 4 << 20

// StatusError records a non-2xx response from FDC.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fdc responded with status %d: %s", e.StatusCode, e.Body)
}

// Client calls the USDA FoodData Central REST API.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	pageSize   int
	limit      int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a FoodData Central client. Every call is bounded by
// cfg.Timeout.
func NewClient(cfg config.FDCConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		timeout:  cfg.Timeout,
		pageSize: cfg.SearchPageSize,
		limit:    cfg.SearchLimit,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With().Str("component", "fdc-client").Logger(),
	}
}

// Search returns at most the configured number of foods matching query.
// Only identifiers and descriptions are relied on by callers; nutrient
// detail is fetched per food with Food.
func (c *Client) Search(ctx context.Context, query string) ([]model.FoodSummary, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("pageSize", fmt.Sprintf("%d", c.pageSize))
	params.Set("dataType", searchDataTypes)

	var resp searchResponse
	if err := c.get(ctx, "/foods/search", params, &resp); err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("food search failed")
		return nil, model.NewRemoteUnavailableError("Failed to fetch ingredients", err)
	}

	foods := resp.Foods
	if len(foods) > c.limit {
		foods = foods[:c.limit]
	}

	summaries := make([]model.FoodSummary, 0, len(foods))
	for _, f := range foods {
		summaries = append(summaries, model.FoodSummary{
			ID:          string(f.FdcID),
			Description: f.Description,
			DataType:    f.DataType,
			BrandOwner:  f.BrandOwner,
		})
	}

	c.logger.Debug().
		Str("query", query).
		Int("total_hits", resp.TotalHits).
		Int("returned", len(summaries)).
		Msg("food search completed")

	return summaries, nil
}

// Food fetches a single food and normalises its nutrients to the five-key
// profile. Any transport failure, timeout, non-2xx status or malformed body
// is reported as a remote-unavailable error.
func (c *Client) Food(ctx context.Context, id string) (*model.FoodRecord, error) {
	var detail foodDetail
	if err := c.get(ctx, "/food/"+url.PathEscape(id), url.Values{}, &detail); err != nil {
		c.logger.Warn().Err(err).Str("food_id", id).Msg("food lookup failed")
		return nil, model.NewRemoteUnavailableError(fmt.Sprintf("Failed to fetch food %s", id), err)
	}

	if detail.FdcID == "" {
		c.logger.Warn().Str("food_id", id).Msg("food payload has no fdcId")
		return nil, model.NewRemoteUnavailableError(
			fmt.Sprintf("Failed to fetch food %s", id),
			errors.New("malformed food payload: missing fdcId"),
		)
	}

	record := &model.FoodRecord{
		ID:          id,
		Description: detail.Description,
		Nutrients:   Normalize(flattenAll(detail.FoodNutrients)),
	}

	c.logger.Debug().
		Str("food_id", id).
		Int("nutrients_reported", len(detail.FoodNutrients)).
		Msg("food fetched")

	return record, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
