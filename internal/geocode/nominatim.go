// Package geocode resolves device coordinates to a city name through the
// Nominatim reverse-geocoding API. Every failure mode degrades to
// "Unknown Location"; callers never see an error.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// UnknownLocation is returned whenever the lookup cannot produce a city.
const UnknownLocation = "Unknown Location"

const userAgent = "HudumaEmergencyConnect/1.0"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	Address struct {
		City   string `json:"city"`
		Town   string `json:"town"`
		County string `json:"county"`
		State  string `json:"state"`
	} `json:"address"`
}

// ReverseCity returns the best city-level name for the coordinates, falling
// back through town, county and state, and finally to UnknownLocation.
func (c *Client) ReverseCity(ctx context.Context, lat, lng float64) string {
	url := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f&addressdetails=1", c.baseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return UnknownLocation
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return UnknownLocation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownLocation
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return UnknownLocation
	}

	for _, name := range []string{body.Address.City, body.Address.Town, body.Address.County, body.Address.State} {
		if name != "" {
			return name
		}
	}
	return UnknownLocation
}
