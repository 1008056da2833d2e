package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Coordinate accepts either a JSON number or a numeric string; browser
// geolocation clients have historically sent both.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		return ErrInvalidCoordinates
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return ErrInvalidCoordinates
	}
	*c = Coordinate(v)
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

// CreateRequest carries a new incident submission.
type CreateRequest struct {
	ClientID    string      `json:"client_id"`
	Type        string      `json:"type"`
	Priority    string      `json:"priority"`
	Description string      `json:"description"`
	LocationLat *Coordinate `json:"location_lat"`
	LocationLng *Coordinate `json:"location_lng"`
	City        string      `json:"city"`
}
