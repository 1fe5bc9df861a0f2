package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type MapboxProvider struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

func NewMapboxProvider(accessToken string) *MapboxProvider {
	return &MapboxProvider{
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     "https://api.mapbox.com",
	}
}

// mapbox profile names differ slightly from the shared mode names
func mapboxProfile(mode string) string {
	switch mode {
	case "driving":
		return "driving"
	case "walking":
		return "walking"
	case "cycling":
		return "cycling"
	default:
		return "driving"
	}
}

func (m *MapboxProvider) Geocode(ctx context.Context, address string) (*GeocodeResponse, error) {
	encodedAddress := url.QueryEscape(address)
	apiURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s",
		m.baseURL, encodedAddress, m.accessToken)

	body, err := m.get(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	return decodeGeocodeBody(body)
}

func (m *MapboxProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResponse, error) {
	apiURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%f,%f.json?access_token=%s",
		m.baseURL, lng, lat, m.accessToken)

	body, err := m.get(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	return decodeGeocodeBody(body)
}

func (m *MapboxProvider) GetDirections(ctx context.Context, request *DirectionsRequest) (*DirectionsResponse, error) {
	coordinates := fmt.Sprintf("%f,%f;%f,%f",
		request.Origin.Longitude, request.Origin.Latitude,
		request.Destination.Longitude, request.Destination.Latitude)

	profile := mapboxProfile(request.Mode)

	apiURL := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s?access_token=%s&overview=full&geometries=geojson&steps=false",
		m.baseURL, profile, coordinates, m.accessToken)
	if request.Alternatives {
		apiURL += "&alternatives=true"
	}

	body, err := m.get(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	var mapboxResp struct {
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
			} `json:"geometry"`
		} `json:"routes"`
	}

	if err := json.Unmarshal(body, &mapboxResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	routes := make([]Route, len(mapboxResp.Routes))
	for i, route := range mapboxResp.Routes {
		geometry := make([]LatLng, len(route.Geometry.Coordinates))
		for j, coord := range route.Geometry.Coordinates {
			if len(coord) < 2 {
				continue
			}
			geometry[j] = LatLng{Latitude: coord[1], Longitude: coord[0]}
		}

		routes[i] = Route{
			Mode:     request.Mode,
			Distance: route.Distance,
			Duration: route.Duration,
			Geometry: geometry,
		}
	}

	return &DirectionsResponse{Routes: routes}, nil
}

func (m *MapboxProvider) get(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Mapbox API error: %s", string(body))
	}

	return body, nil
}

func decodeGeocodeBody(body []byte) (*GeocodeResponse, error) {
	var mapboxResp struct {
		Features []struct {
			ID        string    `json:"id"`
			PlaceName string    `json:"place_name"`
			PlaceType []string  `json:"place_type"`
			Center    []float64 `json:"center"`
		} `json:"features"`
	}

	if err := json.Unmarshal(body, &mapboxResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	results := make([]GeocodeResult, len(mapboxResp.Features))
	for i, feature := range mapboxResp.Features {
		results[i] = GeocodeResult{
			PlaceID: feature.ID,
			Address: feature.PlaceName,
			Coordinates: LatLng{
				Latitude:  feature.Center[1],
				Longitude: feature.Center[0],
			},
			Types: feature.PlaceType,
		}
	}

	return &GeocodeResponse{Results: results}, nil
}
