package maps

import (
	"context"
	"fmt"

	gmaps "googlemaps.github.io/maps"
)

type GoogleMapsProvider struct {
	client *gmaps.Client
}

func NewGoogleMapsProvider(apiKey string) (*GoogleMapsProvider, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client: client,
	}, nil
}

func googleMode(mode string) gmaps.Mode {
	switch mode {
	case "walking":
		return gmaps.TravelModeWalking
	case "cycling":
		return gmaps.TravelModeBicycling
	default:
		return gmaps.TravelModeDriving
	}
}

func (g *GoogleMapsProvider) Geocode(ctx context.Context, address string) (*GeocodeResponse, error) {
	req := &gmaps.GeocodingRequest{
		Address: address,
	}

	resp, err := g.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	results := make([]GeocodeResult, len(resp))
	for i, result := range resp {
		results[i] = GeocodeResult{
			PlaceID: result.PlaceID,
			Address: result.FormattedAddress,
			Coordinates: LatLng{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			},
			Types: result.Types,
		}
	}

	return &GeocodeResponse{Results: results}, nil
}

func (g *GoogleMapsProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResponse, error) {
	req := &gmaps.GeocodingRequest{
		LatLng: &gmaps.LatLng{Lat: lat, Lng: lng},
	}

	resp, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}

	results := make([]GeocodeResult, len(resp))
	for i, result := range resp {
		results[i] = GeocodeResult{
			PlaceID: result.PlaceID,
			Address: result.FormattedAddress,
			Coordinates: LatLng{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			},
			Types: result.Types,
		}
	}

	return &GeocodeResponse{Results: results}, nil
}

func (g *GoogleMapsProvider) GetDirections(ctx context.Context, request *DirectionsRequest) (*DirectionsResponse, error) {
	req := &gmaps.DirectionsRequest{
		Origin:       fmt.Sprintf("%f,%f", request.Origin.Latitude, request.Origin.Longitude),
		Destination:  fmt.Sprintf("%f,%f", request.Destination.Latitude, request.Destination.Longitude),
		Mode:         googleMode(request.Mode),
		Alternatives: request.Alternatives,
	}

	resp, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}

	routes := make([]Route, 0, len(resp))
	for _, route := range resp {
		if len(route.Legs) == 0 {
			continue
		}

		points, err := route.OverviewPolyline.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode polyline: %w", err)
		}

		geometry := make([]LatLng, len(points))
		for i, p := range points {
			geometry[i] = LatLng{Latitude: p.Lat, Longitude: p.Lng}
		}

		var distance float64
		var duration float64
		for _, leg := range route.Legs {
			distance += float64(leg.Distance.Meters)
			duration += leg.Duration.Seconds()
		}

		routes = append(routes, Route{
			Mode:     request.Mode,
			Distance: distance,
			Duration: duration,
			Geometry: geometry,
		})
	}

	return &DirectionsResponse{Routes: routes}, nil
}
