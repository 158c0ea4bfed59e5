// Package reservation decides what a reservation card offers and turns a
// chosen action into the one backend call that requests it.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nethal17/Ramanayake-Travels-sub001/gate"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/policy"
	"github.com/nethal17/Ramanayake-Travels-sub001/validation"
)

var (
	ErrInvalidTransition = errors.New("reservation: invalid transition")
	ErrUnknownAction     = errors.New("reservation: unknown action")
)

// Backend is the part of the API client Submit needs.
type Backend interface {
	UpdateReservationStatus(ctx context.Context, creds api.Credentials, id string, status models.ReservationStatus) error
	UpdateTripStatus(ctx context.Context, creds api.Credentials, id string, status models.TripStatus) error
	UpdatePaymentStatus(ctx context.Context, creds api.Credentials, id string, update models.PaymentUpdate) error
}

var _ Backend = (*api.Client)(nil)

// Actions lists what s may do with res, in display order. Drivers never see
// cancel, and see at most one of start_trip and end_trip.
func Actions(res models.Reservation, s policy.Subject) []gate.Action {
	var out []gate.Action
	switch s.Role {
	case "":
		return nil
	case models.RoleAdmin:
		switch res.Status {
		case models.ReservationPending:
			out = append(out, gate.ActionConfirm, gate.ActionCancel)
		case models.ReservationConfirmed:
			out = append(out, gate.ActionComplete, gate.ActionCancel)
		}
		if res.Status != models.ReservationCancelled {
			out = append(out, gate.ActionRecordPayment)
		}
	case models.RoleDriver:
		if res.Status != models.ReservationConfirmed {
			return nil
		}
		switch res.TripStatus {
		case models.TripPending:
			out = append(out, gate.ActionStartTrip)
		case models.TripStarted:
			out = append(out, gate.ActionEndTrip)
		}
	default:
		if res.Status == models.ReservationPending && res.User.ID != "" && res.User.ID == s.ID {
			out = append(out, gate.ActionCancel)
		}
	}
	return out
}

// Has reports whether action is among actions.
func Has(actions []gate.Action, action gate.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// CheckTransition is the advisory state check run before a request is sent.
// The backend remains the authority.
func CheckTransition(res models.Reservation, action gate.Action) error {
	ok := false
	switch action {
	case gate.ActionConfirm:
		ok = res.Status == models.ReservationPending
	case gate.ActionComplete:
		ok = res.Status == models.ReservationConfirmed
	case gate.ActionCancel:
		ok = res.Status == models.ReservationPending || res.Status == models.ReservationConfirmed
	case gate.ActionStartTrip:
		ok = res.Status == models.ReservationConfirmed && res.TripStatus == models.TripPending
	case gate.ActionEndTrip:
		ok = res.Status == models.ReservationConfirmed && res.TripStatus == models.TripStarted
	case gate.ActionRecordPayment:
		ok = res.Status != models.ReservationCancelled
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if !ok {
		return fmt.Errorf("%w: cannot %s a %s reservation (trip %s)", ErrInvalidTransition, action, res.Status, res.TripStatus)
	}
	return nil
}

// Submit sends the single request that asks the backend for action. The
// local copy of res is never modified; callers reload after success.
func Submit(ctx context.Context, b Backend, creds api.Credentials, res models.Reservation, action gate.Action) error {
	if action == gate.ActionRecordPayment {
		return fmt.Errorf("%w: record_payment needs a payment, use SubmitPayment", ErrUnknownAction)
	}
	if err := CheckTransition(res, action); err != nil {
		return err
	}
	switch action {
	case gate.ActionConfirm:
		return b.UpdateReservationStatus(ctx, creds, res.ID, models.ReservationConfirmed)
	case gate.ActionComplete:
		return b.UpdateReservationStatus(ctx, creds, res.ID, models.ReservationCompleted)
	case gate.ActionCancel:
		return b.UpdateReservationStatus(ctx, creds, res.ID, models.ReservationCancelled)
	case gate.ActionStartTrip:
		return b.UpdateTripStatus(ctx, creds, res.ID, models.TripStarted)
	default:
		return b.UpdateTripStatus(ctx, creds, res.ID, models.TripCompleted)
	}
}

// ValidatePayment checks a payment form against res.
func ValidatePayment(res models.Reservation, form validation.PaymentForm, now time.Time) validation.Violations {
	v := validation.Violations{}
	validation.Payment(form, res.TotalPrice, res.CreatedAt.Time, now, v)
	return v
}

// SubmitPayment validates the form and, when it passes, records it with one
// request. Violations are returned without calling the backend.
func SubmitPayment(ctx context.Context, b Backend, creds api.Credentials, res models.Reservation, form validation.PaymentForm, method, notes string, now time.Time) (validation.Violations, error) {
	if err := CheckTransition(res, gate.ActionRecordPayment); err != nil {
		return nil, err
	}
	if v := ValidatePayment(res, form, now); !v.Empty() {
		return v, nil
	}
	update := models.PaymentUpdate{
		PaymentStatus: models.PaymentStatus(form.Status),
		BillDetails: models.BillDetails{
			ReceiptNumber: form.ReceiptNumber,
			AmountPaid:    form.AmountPaid,
			PaymentDate:   models.NewTimestamp(form.PaymentDate),
			PaymentMethod: method,
			Notes:         notes,
		},
	}
	return nil, b.UpdatePaymentStatus(ctx, creds, res.ID, update)
}
