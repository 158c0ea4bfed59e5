package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/nethal17/Ramanayake-Travels-sub001/gate"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/middleware"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/policy"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/reservation"
	"github.com/nethal17/Ramanayake-Travels-sub001/validation"
)

const dateLayout = "2006-01-02"

// Card is a reservation together with the actions its viewer is offered.
type Card struct {
	Reservation models.Reservation
	Actions     []gate.Action
}

// cards keeps the reservations s may view, newest first.
func (b *Base) cards(ctx context.Context, s policy.Subject, list []models.Reservation) []Card {
	out := make([]Card, 0, len(list))
	for i := range list {
		if !b.Gate.Allowed(ctx, s, gate.ActionView, policy.ResourceReservation, &list[i]) {
			continue
		}
		out = append(out, Card{Reservation: list[i], Actions: reservation.Actions(list[i], s)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Reservation.CreatedAt.After(out[j].Reservation.CreatedAt.Time)
	})
	return out
}

var errReservationNotFound = errors.New("reservation not found")

// findReservation loads one reservation. The backend has no single-item
// endpoint, so it is picked from the caller's list.
func (b *Base) findReservation(ctx context.Context, c api.Credentials, id string) (models.Reservation, error) {
	list, err := b.API.ListReservations(ctx, c)
	if err != nil {
		return models.Reservation{}, err
	}
	for _, res := range list {
		if res.ID == id {
			return res, nil
		}
	}
	return models.Reservation{}, errReservationNotFound
}

// backTo returns the form's "next" path when it is local, else fallback.
func backTo(r *http.Request, fallback string) string {
	next := r.FormValue("next")
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}

type ReservationHandler struct {
	*Base
}

func NewReservationHandler(b *Base) *ReservationHandler {
	return &ReservationHandler{Base: b}
}

// Profile lists the customer's own reservations split into active and past.
func (h *ReservationHandler) Profile(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	list, err := h.API.ListReservations(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	var active, past []Card
	for _, c := range h.cards(r.Context(), policy.SubjectFrom(r.Context()), list) {
		if c.Reservation.Active() {
			active = append(active, c)
		} else {
			past = append(past, c)
		}
	}
	data["Active"] = active
	data["Past"] = past
	h.render(w, r, "customer/profile.html", data)
}

type bookingForm struct {
	VehicleID      string
	PickupDate     string
	ReturnDate     string
	PickupLocation string
	ReturnLocation string
	DriverRequired bool
	DriverID       string
}

func (f bookingForm) request() (models.ReservationRequest, validation.Violations, time.Time, time.Time) {
	v := validation.Violations{}
	validation.Required("vehicleId", f.VehicleID, v)
	validation.Required("pickupLocation", f.PickupLocation, v)
	validation.Required("returnLocation", f.ReturnLocation, v)
	pickup, _ := time.Parse(dateLayout, f.PickupDate)
	ret, _ := time.Parse(dateLayout, f.ReturnDate)
	return models.ReservationRequest{
		VehicleID:      f.VehicleID,
		PickupDate:     pickup,
		ReturnDate:     ret,
		PickupLocation: f.PickupLocation,
		ReturnLocation: f.ReturnLocation,
		DriverRequired: f.DriverRequired,
		DriverID:       f.DriverID,
	}, v, pickup, ret
}

// formData loads the vehicle and driver choices. Only ErrUnauthorized is
// returned; other failures leave the lists empty.
func (h *ReservationHandler) formData(r *http.Request, form bookingForm) (map[string]any, error) {
	data := map[string]any{"Form": form}
	vehicles, err := h.API.ListVehicles(r.Context(), creds(r))
	if errors.Is(err, api.ErrUnauthorized) {
		return nil, err
	}
	if err != nil {
		h.Log.Warning("booking form vehicles", logger.Error(err))
	}
	bookable := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Bookable() || v.ID == form.VehicleID {
			bookable = append(bookable, v)
		}
	}
	data["Vehicles"] = bookable
	drivers, err := h.API.ReservationDrivers(r.Context(), creds(r))
	if errors.Is(err, api.ErrUnauthorized) {
		return nil, err
	}
	if err != nil {
		h.Log.Warning("booking form drivers", logger.Error(err))
	}
	data["Drivers"] = drivers
	data["Today"] = h.now().Format(dateLayout)
	return data, nil
}

// New shows and submits the booking form.
func (h *ReservationHandler) New(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data, err := h.formData(r, bookingForm{VehicleID: r.URL.Query().Get("vehicle")})
		if err != nil {
			h.expire(w, r)
			return
		}
		h.render(w, r, "customer/reservation_new.html", data)
		return
	}

	form := bookingForm{
		VehicleID:      r.FormValue("vehicleId"),
		PickupDate:     r.FormValue("pickupDate"),
		ReturnDate:     r.FormValue("returnDate"),
		PickupLocation: strings.TrimSpace(r.FormValue("pickupLocation")),
		ReturnLocation: strings.TrimSpace(r.FormValue("returnLocation")),
		DriverRequired: r.FormValue("driverRequired") != "",
		DriverID:       r.FormValue("driverId"),
	}
	if !form.DriverRequired {
		form.DriverID = ""
	}
	req, v, pickup, ret := form.request()
	validation.DateOrder("pickupDate", "returnDate", pickup, ret, v)
	if !pickup.IsZero() {
		validation.NotInPast("pickupDate", pickup, h.now(), v)
	}
	if !v.Empty() {
		data, err := h.formData(r, form)
		if err != nil {
			h.expire(w, r)
			return
		}
		data["Errors"] = v
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "customer/reservation_new.html", data)
		return
	}

	if _, err := h.API.CreateReservation(r.Context(), creds(r), req); err != nil {
		h.fail(w, r, err, "/reservations/new?vehicle="+form.VehicleID)
		return
	}
	h.success(w, r, "flash.reservation_made", "/customer-profile")
}

// Act applies one lifecycle action (cancel, confirm, complete, start_trip,
// end_trip) to a reservation with a single backend call.
func (h *ReservationHandler) Act(w http.ResponseWriter, r *http.Request) {
	subject := policy.SubjectFrom(r.Context())
	back := backTo(r, policy.LandingPath(subject.Role))
	action := gate.Action(r.FormValue("action"))

	res, err := h.findReservation(r.Context(), creds(r), mux.Vars(r)["id"])
	if errors.Is(err, errReservationNotFound) {
		middleware.Flash(w, r, middleware.FlashError, "flash.not_found")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if err != nil {
		h.fail(w, r, err, back)
		return
	}

	if !reservation.Has(reservation.Actions(res, subject), action) ||
		!h.Gate.Allowed(r.Context(), subject, action, policy.ResourceReservation, &res) {
		middleware.Flash(w, r, middleware.FlashError, "flash.action_denied")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	err = reservation.Submit(r.Context(), h.API, creds(r), res, action)
	switch {
	case err == nil:
		h.Log.Info("reservation action", logger.String("reservation", res.ID), logger.String("action", string(action)))
		h.success(w, r, "flash.action_done", back)
	case errors.Is(err, reservation.ErrInvalidTransition), errors.Is(err, reservation.ErrUnknownAction):
		middleware.Flash(w, r, middleware.FlashError, "flash.action_denied")
		http.Redirect(w, r, back, http.StatusSeeOther)
	default:
		h.fail(w, r, err, back)
	}
}

// DriverProfile lists the trips assigned to the signed-in driver.
func (h *ReservationHandler) DriverProfile(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	list, err := h.API.ListReservations(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	var upcoming, done []Card
	for _, c := range h.cards(r.Context(), policy.SubjectFrom(r.Context()), list) {
		if c.Reservation.TripStatus == models.TripCompleted || !c.Reservation.Active() {
			done = append(done, c)
		} else {
			upcoming = append(upcoming, c)
		}
	}
	data["Trips"] = upcoming
	data["Finished"] = done
	h.render(w, r, "customer/driver.html", data)
}

// TechnicianProfile lists the vehicles currently in maintenance.
func (h *ReservationHandler) TechnicianProfile(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	vehicles, err := h.API.ListVehicles(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	var maintenance []models.Vehicle
	for _, v := range vehicles {
		if v.Status == models.VehicleMaintenance {
			maintenance = append(maintenance, v)
		}
	}
	data["Vehicles"] = maintenance
	h.render(w, r, "customer/technician.html", data)
}
