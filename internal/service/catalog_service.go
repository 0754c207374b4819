package service

import (
	"context"
	"sort"

	"homefix/internal/domain"
	"homefix/internal/metrics"
	"homefix/internal/models"

	"github.com/rs/zerolog"
)

// fallbackServices is served whenever the remote catalog cannot be read.
// The list and its order are fixed: the app must never show an empty
// service list because the backend is down.
var fallbackServices = []models.Service{
	{ID: "1", Name: "AC Repair", Description: "Air conditioning repair and maintenance"},
	{ID: "2", Name: "Plumbing", Description: "Plumbing services and repairs"},
	{ID: "3", Name: "Electrical", Description: "Electrical work and repairs"},
	{ID: "4", Name: "Cleaning", Description: "House and office cleaning services"},
	{ID: "5", Name: "Painting", Description: "Interior and exterior painting"},
}

// CatalogService serves the offerable service list.
type CatalogService struct {
	client domain.CatalogClient
	logger *zerolog.Logger
}

func NewCatalogService(client domain.CatalogClient, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		client: client,
		logger: logger,
	}
}

// ListServices returns the remote catalog ordered by name. On any failure it
// returns the fixed fallback list together with ErrCatalogFallback, which
// callers treat as success.
func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := s.client.ListServices(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("catalog fetch failed, serving fallback list")
		metrics.IncCatalogFallback()
		return FallbackServices(), ErrCatalogFallback
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
	return services, nil
}

// FallbackServices returns a copy of the static catalog.
func FallbackServices() []models.Service {
	out := make([]models.Service, len(fallbackServices))
	copy(out, fallbackServices)
	return out
}
