package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"
	"safecity/internal/utils"
	"safecity/pkg/logger"
	"safecity/pkg/maps"
)

type SafeRouteRequest struct {
	Origin      maps.LatLng `json:"origin"`
	Destination maps.LatLng `json:"destination"`
}

// ScoredRoute is a candidate route annotated with its risk exposure.
// RiskScore is normalized per kilometer so short and long routes
// compare fairly.
type ScoredRoute struct {
	maps.Route
	RiskScore   float64 `json:"risk_score"`
	Recommended bool    `json:"recommended"`
}

type SafeRouteResponse struct {
	Routes        []ScoredRoute `json:"routes"`
	IncidentCount int           `json:"incident_count"`
}

type RouteService interface {
	SafeRoute(ctx context.Context, request *SafeRouteRequest) (*SafeRouteResponse, error)
	Geocode(ctx context.Context, address string) (*maps.GeocodeResponse, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*maps.GeocodeResponse, error)
}

type routeService struct {
	mapsProvider maps.MapsProvider
	reportRepo   interfaces.ReportRepository
	logger       *logger.Logger
}

func NewRouteService(mapsProvider maps.MapsProvider, reportRepo interfaces.ReportRepository, logger *logger.Logger) RouteService {
	return &routeService{
		mapsProvider: mapsProvider,
		reportRepo:   reportRepo,
		logger:       logger,
	}
}

var safeRouteModes = []string{"walking", "cycling", "driving"}

// SafeRoute fetches route alternatives across travel modes and scores
// each against the locations of reported incidents. The lowest-risk
// route is flagged as recommended.
func (s *routeService) SafeRoute(ctx context.Context, request *SafeRouteRequest) (*SafeRouteResponse, error) {
	if fields := validateSafeRoute(request); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	incidents, err := s.reportRepo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load incidents for scoring: %w", err)
	}

	var scored []ScoredRoute
	for _, mode := range safeRouteModes {
		directions, err := s.mapsProvider.GetDirections(ctx, &maps.DirectionsRequest{
			Origin:       request.Origin,
			Destination:  request.Destination,
			Mode:         mode,
			Alternatives: true,
		})
		if err != nil {
			// a mode without coverage must not sink the whole request
			s.logger.WithError(err).WithField("mode", mode).Warn("Directions lookup failed")
			continue
		}

		for _, route := range directions.Routes {
			route.Mode = mode
			scored = append(scored, ScoredRoute{
				Route:     route,
				RiskScore: scoreRoute(route, incidents),
			})
		}
	}

	if len(scored) == 0 {
		return nil, ErrNoRoute
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RiskScore < scored[j].RiskScore
	})
	scored[0].Recommended = true

	return &SafeRouteResponse{
		Routes:        scored,
		IncidentCount: len(incidents),
	}, nil
}

func (s *routeService) Geocode(ctx context.Context, address string) (*maps.GeocodeResponse, error) {
	if address == "" {
		return nil, NewValidationError("address", "address is required")
	}

	response, err := s.mapsProvider.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}

	return response, nil
}

func (s *routeService) ReverseGeocode(ctx context.Context, lat, lng float64) (*maps.GeocodeResponse, error) {
	if !utils.IsValidCoordinates(lat, lng) {
		return nil, NewValidationError("coordinates", "coordinates are out of range")
	}

	response, err := s.mapsProvider.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	return response, nil
}

// scoreRoute sums, over sampled route points, an exponential proximity
// decay for each incident within the influence radius, then normalizes
// by route length in kilometers.
func scoreRoute(route maps.Route, incidents []*models.Report) float64 {
	points := sampleGeometry(route.Geometry, utils.MaxRoutePointsScored)
	if len(points) == 0 {
		return 0
	}

	var total float64
	for _, point := range points {
		for _, incident := range incidents {
			if !incident.HasCoordinates() {
				continue
			}
			d := utils.CalculateDistance(point.Latitude, point.Longitude, *incident.Latitude, *incident.Longitude)
			if d <= utils.RiskInfluenceRadiusKM {
				total += math.Exp(-d / utils.RiskDecayKM)
			}
		}
	}

	lengthKM := route.Distance / 1000
	if lengthKM <= 0 {
		return total
	}

	return total / lengthKM
}

// sampleGeometry thins dense geometries to at most max points while
// always keeping the endpoints.
func sampleGeometry(geometry []maps.LatLng, max int) []maps.LatLng {
	if len(geometry) <= max {
		return geometry
	}

	sampled := make([]maps.LatLng, 0, max)
	step := float64(len(geometry)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		sampled = append(sampled, geometry[int(math.Round(float64(i)*step))])
	}

	return sampled
}

func validateSafeRoute(request *SafeRouteRequest) map[string]string {
	fields := make(map[string]string)

	if request == nil {
		fields["request"] = "request body is required"
		return fields
	}
	if !utils.IsValidCoordinates(request.Origin.Latitude, request.Origin.Longitude) {
		fields["origin"] = "origin coordinates are out of range"
	}
	if !utils.IsValidCoordinates(request.Destination.Latitude, request.Destination.Longitude) {
		fields["destination"] = "destination coordinates are out of range"
	}
	if request.Origin == request.Destination {
		fields["destination"] = "origin and destination must differ"
	}

	return fields
}
