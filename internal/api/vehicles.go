package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// ListVehicles returns the public catalogue.
func (c *Client) ListVehicles(ctx context.Context, creds Credentials) ([]models.Vehicle, error) {
	return c.vehicleList(ctx, "/vehicles", nil, creds)
}

// SearchVehicles filters the catalogue server-side.
func (c *Client) SearchVehicles(ctx context.Context, creds Credentials, q models.VehicleQuery) ([]models.Vehicle, error) {
	return c.vehicleList(ctx, "/vehicles/search", searchParams(q), creds)
}

// CompanyVehicles lists vehicles owned by the company (admin).
func (c *Client) CompanyVehicles(ctx context.Context, creds Credentials) ([]models.Vehicle, error) {
	return c.vehicleList(ctx, "/vehicles/admin/company", nil, creds)
}

// CustomerVehicles lists vehicles registered by customer-owners (admin).
func (c *Client) CustomerVehicles(ctx context.Context, creds Credentials) ([]models.Vehicle, error) {
	return c.vehicleList(ctx, "/vehicles/admin/customer", nil, creds)
}

func (c *Client) vehicleList(ctx context.Context, path string, query url.Values, creds Credentials) ([]models.Vehicle, error) {
	var out []models.Vehicle
	if err := c.doJSON(ctx, http.MethodGet, path, query, creds, nil, &out, "vehicles"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVehicle fetches one vehicle.
func (c *Client) GetVehicle(ctx context.Context, creds Credentials, id string) (models.Vehicle, error) {
	esc, err := escapeID(id)
	if err != nil {
		return models.Vehicle{}, err
	}
	var out models.Vehicle
	if err := c.doJSON(ctx, http.MethodGet, "/vehicles/"+esc, nil, creds, nil, &out, "vehicle"); err != nil {
		return models.Vehicle{}, err
	}
	return out, nil
}

// CreateVehicle registers a vehicle and returns the stored record.
func (c *Client) CreateVehicle(ctx context.Context, creds Credentials, v models.Vehicle) (models.Vehicle, error) {
	v.ID = ""
	var out models.Vehicle
	if err := c.doJSON(ctx, http.MethodPost, "/vehicles", nil, creds, v, &out, "vehicle"); err != nil {
		return models.Vehicle{}, err
	}
	return out, nil
}

// UpdateVehicle replaces the editable fields of a vehicle.
func (c *Client) UpdateVehicle(ctx context.Context, creds Credentials, id string, v models.Vehicle) (models.Vehicle, error) {
	esc, err := escapeID(id)
	if err != nil {
		return models.Vehicle{}, err
	}
	v.ID = ""
	var out models.Vehicle
	if err := c.doJSON(ctx, http.MethodPut, "/vehicles/"+esc, nil, creds, v, &out, "vehicle"); err != nil {
		return models.Vehicle{}, err
	}
	return out, nil
}

// DeleteVehicle removes a vehicle.
func (c *Client) DeleteVehicle(ctx context.Context, creds Credentials, id string) error {
	esc, err := escapeID(id)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/vehicles/"+esc, nil, creds, nil, nil)
}

func searchParams(q models.VehicleQuery) url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("make", q.Make)
	set("model", q.Model)
	set("fuelType", q.FuelType)
	set("transmission", q.Transmission)
	if q.MinSeats > 0 {
		v.Set("seats", strconv.Itoa(q.MinSeats))
	}
	if q.MinPrice > 0 {
		v.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		v.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	return v
}
