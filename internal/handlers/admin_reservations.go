package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"github.com/nethal17/Ramanayake-Travels-sub001/gate"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/middleware"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/policy"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/reservation"
	"github.com/nethal17/Ramanayake-Travels-sub001/validation"
)

const adminReservationsPath = "/admin/reservations"

// Reservations lists every reservation, optionally filtered by status.
func (h *AdminHandler) Reservations(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	list, err := h.API.ListReservations(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	status := models.ReservationStatus(r.URL.Query().Get("status"))
	cards := h.cards(r.Context(), policy.SubjectFrom(r.Context()), list)
	if status != "" {
		filtered := cards[:0]
		for _, c := range cards {
			if c.Reservation.Status == status {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}
	data["Cards"] = cards
	data["Status"] = status
	data["Statuses"] = models.ReservationStatuses
	data["PaymentStatuses"] = models.PaymentStatuses
	data["Today"] = h.now().Format(dateLayout)
	h.render(w, r, "admin/reservations.html", data)
}

var paymentFields = []string{"paymentStatus", "receiptNumber", "amountPaid", "paymentDate"}

// RecordPayment validates and stores the payment form of one reservation.
func (h *AdminHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	back := backTo(r, adminReservationsPath)
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
	if !h.Gate.Allowed(r.Context(), policy.SubjectFrom(r.Context()), gate.ActionRecordPayment, policy.ResourceReservation, &res) {
		middleware.Flash(w, r, middleware.FlashError, "flash.action_denied")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	form := validation.PaymentForm{
		Status:        r.FormValue("paymentStatus"),
		ReceiptNumber: strings.TrimSpace(r.FormValue("receiptNumber")),
		AmountPaid:    cast.ToFloat64(r.FormValue("amountPaid")),
	}
	if d, err := time.Parse(dateLayout, r.FormValue("paymentDate")); err == nil {
		form.PaymentDate = d
	}
	// A bare date means "that day"; compare it against the end of today.
	now := h.now()
	y, m, d := now.Date()
	endOfDay := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)

	v, err := reservation.SubmitPayment(r.Context(), h.API, creds(r), res, form,
		r.FormValue("paymentMethod"), strings.TrimSpace(r.FormValue("notes")), endOfDay)
	switch {
	case errors.Is(err, reservation.ErrInvalidTransition):
		middleware.Flash(w, r, middleware.FlashError, "flash.action_denied")
		http.Redirect(w, r, back, http.StatusSeeOther)
	case err != nil:
		h.fail(w, r, err, back)
	case !v.Empty():
		middleware.Flash(w, r, middleware.FlashError, v.First(paymentFields...))
		http.Redirect(w, r, back, http.StatusSeeOther)
	default:
		h.Log.Info("payment recorded", logger.String("reservation", res.ID), logger.String("status", form.Status))
		h.success(w, r, "flash.payment_recorded", back)
	}
}
