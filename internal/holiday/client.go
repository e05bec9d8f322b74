// Package holiday looks up public holidays from the Nager.Date API. It is
// the only outbound network call in the system and is strictly read-only.
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Holiday is one public holiday as returned by the API.
type Holiday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// Client fetches public holidays for a fixed country.
type Client struct {
	baseURL string
	country string
	client  *http.Client
}

// NewClient returns a client for the given API base URL (e.g.
// "https://date.nager.at") and ISO country code.
func NewClient(baseURL, country string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// PublicHolidays returns the public holidays for a year.
func (c *Client) PublicHolidays(ctx context.Context, year int) ([]Holiday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday lookup returned status %d", resp.StatusCode)
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response: %w", err)
	}
	return holidays, nil
}
