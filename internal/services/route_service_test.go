package services

import (
	"context"
	"errors"
	"testing"

	"safecity/internal/models"
	"safecity/pkg/maps"
)

// straightLine builds a route geometry between two points with evenly
// spaced samples.
func straightLine(from, to maps.LatLng, samples int) []maps.LatLng {
	geometry := make([]maps.LatLng, samples)
	for i := 0; i < samples; i++ {
		f := float64(i) / float64(samples-1)
		geometry[i] = maps.LatLng{
			Latitude:  from.Latitude + (to.Latitude-from.Latitude)*f,
			Longitude: from.Longitude + (to.Longitude-from.Longitude)*f,
		}
	}
	return geometry
}

func TestSafeRouteRecommendsLowestRisk(t *testing.T) {
	origin := maps.LatLng{Latitude: 12.9700, Longitude: 77.5900}
	destination := maps.LatLng{Latitude: 12.9800, Longitude: 77.5900}

	// riskyRoute passes right through the incident; detour stays well
	// outside the influence radius
	riskyRoute := maps.Route{
		Distance: 1100,
		Duration: 800,
		Geometry: straightLine(origin, destination, 20),
	}
	detour := maps.Route{
		Distance: 1500,
		Duration: 1100,
		Geometry: straightLine(
			maps.LatLng{Latitude: 12.9700, Longitude: 77.6100},
			maps.LatLng{Latitude: 12.9800, Longitude: 77.6100},
			20,
		),
	}

	provider := &fakeMapsProvider{routesByMode: map[string][]maps.Route{
		"walking": {riskyRoute, detour},
	}}

	reports := newFakeReportRepo()
	incident := &models.Report{
		ReportID:  "SC-TEST0001",
		Type:      models.ReportTypeAssault,
		Status:    models.ReportStatusPending,
		Latitude:  floatPtr(12.9750),
		Longitude: floatPtr(77.5900),
	}
	reports.reports[incident.ReportID] = incident

	service := NewRouteService(provider, reports, newTestLogger(t))

	response, err := service.SafeRoute(context.Background(), &SafeRouteRequest{
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		t.Fatalf("SafeRoute: %v", err)
	}

	if response.IncidentCount != 1 {
		t.Errorf("incident count = %d, want 1", response.IncidentCount)
	}
	if len(response.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(response.Routes))
	}

	recommended := response.Routes[0]
	if !recommended.Recommended {
		t.Error("first route not flagged recommended")
	}
	if recommended.Distance != detour.Distance {
		t.Errorf("recommended the risky route (distance %v)", recommended.Distance)
	}
	if recommended.RiskScore > response.Routes[1].RiskScore {
		t.Errorf("recommended risk %v exceeds alternative %v", recommended.RiskScore, response.Routes[1].RiskScore)
	}
	if response.Routes[1].RiskScore <= 0 {
		t.Error("route through incident scored zero risk")
	}
}

func TestSafeRouteNoIncidentsScoresZero(t *testing.T) {
	origin := maps.LatLng{Latitude: 12.97, Longitude: 77.59}
	destination := maps.LatLng{Latitude: 12.98, Longitude: 77.59}

	provider := &fakeMapsProvider{routesByMode: map[string][]maps.Route{
		"walking": {{Distance: 1100, Duration: 800, Geometry: straightLine(origin, destination, 10)}},
	}}

	service := NewRouteService(provider, newFakeReportRepo(), newTestLogger(t))

	response, err := service.SafeRoute(context.Background(), &SafeRouteRequest{
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		t.Fatalf("SafeRoute: %v", err)
	}

	for _, route := range response.Routes {
		if route.RiskScore != 0 {
			t.Errorf("risk = %v with no incidents, want 0", route.RiskScore)
		}
	}
}

func TestSafeRouteNoRoutes(t *testing.T) {
	provider := &fakeMapsProvider{routesByMode: map[string][]maps.Route{}}
	service := NewRouteService(provider, newFakeReportRepo(), newTestLogger(t))

	_, err := service.SafeRoute(context.Background(), &SafeRouteRequest{
		Origin:      maps.LatLng{Latitude: 12.97, Longitude: 77.59},
		Destination: maps.LatLng{Latitude: 12.98, Longitude: 77.59},
	})
	if !errors.Is(err, ErrNoRoute) {
		t.Errorf("err = %v, want ErrNoRoute", err)
	}
}

func TestSafeRouteProviderFailureForAllModes(t *testing.T) {
	provider := &fakeMapsProvider{directionsErr: errors.New("provider down")}
	service := NewRouteService(provider, newFakeReportRepo(), newTestLogger(t))

	_, err := service.SafeRoute(context.Background(), &SafeRouteRequest{
		Origin:      maps.LatLng{Latitude: 12.97, Longitude: 77.59},
		Destination: maps.LatLng{Latitude: 12.98, Longitude: 77.59},
	})
	if !errors.Is(err, ErrNoRoute) {
		t.Errorf("err = %v, want ErrNoRoute", err)
	}
}

func TestSafeRouteValidation(t *testing.T) {
	service := NewRouteService(&fakeMapsProvider{}, newFakeReportRepo(), newTestLogger(t))

	tests := []struct {
		name    string
		request *SafeRouteRequest
		field   string
	}{
		{
			name: "origin out of range",
			request: &SafeRouteRequest{
				Origin:      maps.LatLng{Latitude: 100, Longitude: 77.59},
				Destination: maps.LatLng{Latitude: 12.98, Longitude: 77.59},
			},
			field: "origin",
		},
		{
			name: "same origin and destination",
			request: &SafeRouteRequest{
				Origin:      maps.LatLng{Latitude: 12.97, Longitude: 77.59},
				Destination: maps.LatLng{Latitude: 12.97, Longitude: 77.59},
			},
			field: "destination",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SafeRoute(context.Background(), tt.request)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := validationErr.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want entry for %q", validationErr.Fields, tt.field)
			}
		})
	}
}

func TestSampleGeometryKeepsEndpoints(t *testing.T) {
	geometry := straightLine(
		maps.LatLng{Latitude: 0, Longitude: 0},
		maps.LatLng{Latitude: 1, Longitude: 1},
		500,
	)

	sampled := sampleGeometry(geometry, 200)
	if len(sampled) != 200 {
		t.Fatalf("sampled = %d points, want 200", len(sampled))
	}
	if sampled[0] != geometry[0] {
		t.Error("first point dropped by sampling")
	}
	if sampled[len(sampled)-1] != geometry[len(geometry)-1] {
		t.Error("last point dropped by sampling")
	}
}
