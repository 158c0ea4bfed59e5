package api

import (
	"context"
	"net/http"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// ListReservations returns the reservations visible to the caller: their own
// for customers, assigned trips for drivers, everything for admins.
func (c *Client) ListReservations(ctx context.Context, creds Credentials) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := c.doJSON(ctx, http.MethodGet, "/reservations", nil, creds, nil, &out, "reservations"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReservation books a vehicle.
func (c *Client) CreateReservation(ctx context.Context, creds Credentials, req models.ReservationRequest) (models.Reservation, error) {
	var out models.Reservation
	if err := c.doJSON(ctx, http.MethodPost, "/reservations", nil, creds, req, &out, "reservation"); err != nil {
		return models.Reservation{}, err
	}
	return out, nil
}

// UpdateReservationStatus issues PUT /reservations/:id/status.
func (c *Client) UpdateReservationStatus(ctx context.Context, creds Credentials, id string, status models.ReservationStatus) error {
	esc, err := escapeID(id)
	if err != nil {
		return err
	}
	body := map[string]models.ReservationStatus{"status": status}
	return c.doJSON(ctx, http.MethodPut, "/reservations/"+esc+"/status", nil, creds, body, nil)
}

// UpdateTripStatus issues PUT /reservations/:id/trip-status.
func (c *Client) UpdateTripStatus(ctx context.Context, creds Credentials, id string, status models.TripStatus) error {
	esc, err := escapeID(id)
	if err != nil {
		return err
	}
	body := map[string]models.TripStatus{"tripStatus": status}
	return c.doJSON(ctx, http.MethodPut, "/reservations/"+esc+"/trip-status", nil, creds, body, nil)
}

// UpdatePaymentStatus issues PUT /reservations/:id/payment-status.
func (c *Client) UpdatePaymentStatus(ctx context.Context, creds Credentials, id string, update models.PaymentUpdate) error {
	esc, err := escapeID(id)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, "/reservations/"+esc+"/payment-status", nil, creds, update, nil)
}

// ReservationDrivers lists drivers that can be attached to a booking.
func (c *Client) ReservationDrivers(ctx context.Context, creds Credentials) ([]models.Driver, error) {
	var out []models.Driver
	if err := c.doJSON(ctx, http.MethodGet, "/reservations/drivers", nil, creds, nil, &out, "drivers"); err != nil {
		return nil, err
	}
	return out, nil
}
