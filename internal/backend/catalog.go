package backend

import (
	"context"
	"net/http"

	"homefix/internal/models"
)

// ListServices fetches the service catalog ordered by name.
func (c *Client) ListServices(ctx context.Context) ([]models.Service, error) {
	var wrap struct {
		Services []models.Service `json:"services"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/services?order=name", "", nil, &wrap); err != nil {
		return nil, err
	}
	return wrap.Services, nil
}
