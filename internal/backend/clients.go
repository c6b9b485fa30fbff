package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// LookupClient searches a returning client by email or phone. Only one of
// the two is sent; email wins when both are given.
func (c *Client) LookupClient(ctx context.Context, email, phone string) (*models.ClientLookup, error) {
	q := url.Values{}
	switch {
	case email != "":
		q.Set("email", email)
	case phone != "":
		q.Set("phone", phone)
	default:
		return &models.ClientLookup{}, nil
	}

	var out models.ClientLookup
	if err := c.doJSON(ctx, "client_lookup", http.MethodGet, "/api/clients/lookup/", q, nil, &out); err != nil {
		if IsNotFound(err) {
			return &models.ClientLookup{}, nil
		}
		return nil, fmt.Errorf("lookup client: %w", err)
	}
	if out.Client != nil || out.Vehicle != nil || out.Address != nil {
		out.Found = true
	}
	return &out, nil
}

func (c *Client) Regions(ctx context.Context) ([]models.Region, error) {
	out, err := getList[models.Region](ctx, c, "region_list", "/api/clients/regions/", nil)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return out, nil
}

func (c *Client) Communes(ctx context.Context, regionID uint) ([]models.Commune, error) {
	out, err := getList[models.Commune](ctx, c, "commune_list", idPath("/api/clients/regions/%d/communes/", regionID), nil)
	if err != nil {
		return nil, fmt.Errorf("list communes: %w", err)
	}
	return out, nil
}
