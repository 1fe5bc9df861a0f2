package maps

import "context"

// MapsProvider abstracts the hosted directions/geocoding service.
type MapsProvider interface {
	Geocode(ctx context.Context, address string) (*GeocodeResponse, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResponse, error)
	GetDirections(ctx context.Context, request *DirectionsRequest) (*DirectionsResponse, error)
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
}

type GeocodeResult struct {
	PlaceID     string   `json:"place_id"`
	Address     string   `json:"formatted_address"`
	Coordinates LatLng   `json:"coordinates"`
	Types       []string `json:"types"`
}

type DirectionsRequest struct {
	Origin       LatLng `json:"origin"`
	Destination  LatLng `json:"destination"`
	Mode         string `json:"mode"` // driving, walking, cycling
	Alternatives bool   `json:"alternatives"`
}

type DirectionsResponse struct {
	Routes []Route `json:"routes"`
}

// Route is one candidate path. Geometry is the full path as ordered
// coordinates, dense enough for proximity scoring.
type Route struct {
	Mode     string   `json:"mode"`
	Distance float64  `json:"distance"` // meters
	Duration float64  `json:"duration"` // seconds
	Geometry []LatLng `json:"geometry"`
}
