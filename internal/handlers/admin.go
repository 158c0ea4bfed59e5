package handlers

import (
	"net/http"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

type AdminHandler struct {
	*Base
}

func NewAdminHandler(b *Base) *AdminHandler {
	return &AdminHandler{Base: b}
}

// Stats are the dashboard counters.
type Stats struct {
	Vehicles       int
	VehiclesBy     map[models.VehicleStatus]int
	Reservations   int
	ReservationsBy map[models.ReservationStatus]int
	Unpaid         int
	OpenInquiries  int
	Users          int
	Revenue        float64
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, c := r.Context(), creds(r)
	stats := Stats{
		VehiclesBy:     map[models.VehicleStatus]int{},
		ReservationsBy: map[models.ReservationStatus]int{},
	}
	data := map[string]any{}

	vehicles, err := h.API.ListVehicles(ctx, c)
	if err == nil {
		stats.Vehicles = len(vehicles)
		for _, v := range vehicles {
			stats.VehiclesBy[v.Status]++
		}
		var list []models.Reservation
		list, err = h.API.ListReservations(ctx, c)
		for _, res := range list {
			stats.Reservations++
			stats.ReservationsBy[res.Status]++
			if res.PaymentStatus != models.PaymentPaid && res.Status != models.ReservationCancelled {
				stats.Unpaid++
			}
			if res.BillDetails != nil {
				stats.Revenue += res.BillDetails.AmountPaid
			}
		}
	}
	if err == nil {
		var inquiries []models.Inquiry
		inquiries, err = h.API.AdminInquiries(ctx, c)
		for _, i := range inquiries {
			if i.Open() {
				stats.OpenInquiries++
			}
		}
	}
	if err == nil {
		var users []models.User
		users, err = h.API.AllUsers(ctx, c)
		stats.Users = len(users)
	}
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}

	data["Stats"] = stats
	data["VehicleStatuses"] = models.VehicleStatuses
	data["ReservationStatuses"] = models.ReservationStatuses
	h.render(w, r, "admin/dashboard.html", data)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	users, err := h.API.AllUsers(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	role := models.Role(r.URL.Query().Get("role"))
	if role.Valid() {
		filtered := users[:0:0]
		for _, u := range users {
			if u.Role == role {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	data["Users"] = users
	data["Role"] = role
	data["Roles"] = models.Roles
	h.render(w, r, "admin/users.html", data)
}
