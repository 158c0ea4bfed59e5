package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/middleware"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/validation"
)

func (h *AdminHandler) Inquiries(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	inquiries, err := h.API.AdminInquiries(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	var open, closed []models.Inquiry
	for _, i := range inquiries {
		if i.Open() {
			open = append(open, i)
		} else {
			closed = append(closed, i)
		}
	}
	data["Open"] = open
	data["Closed"] = closed
	data["Statuses"] = models.InquiryStatuses
	h.render(w, r, "admin/inquiries.html", data)
}

// RespondInquiry stores the admin response and new status.
func (h *AdminHandler) RespondInquiry(w http.ResponseWriter, r *http.Request) {
	update := models.InquiryUpdate{
		Status:        models.InquiryStatus(r.FormValue("status")),
		AdminResponse: strings.TrimSpace(r.FormValue("adminResponse")),
	}
	if update.Status == "" {
		update.Status = models.InquiryInProgress
	}
	v := validation.Violations{}
	if !update.Status.Valid() {
		v["status"] = "invalid_status"
	}
	if !v.Empty() {
		middleware.Flash(w, r, middleware.FlashError, v.First("status"))
		http.Redirect(w, r, "/admin/inquiries", http.StatusSeeOther)
		return
	}
	if err := h.API.UpdateInquiry(r.Context(), creds(r), mux.Vars(r)["id"], update); err != nil {
		h.fail(w, r, err, "/admin/inquiries")
		return
	}
	h.success(w, r, "flash.inquiry_updated", "/admin/inquiries")
}

func (h *AdminHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeleteInquiry(r.Context(), creds(r), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err, "/admin/inquiries")
		return
	}
	h.success(w, r, "flash.inquiry_deleted", "/admin/inquiries")
}
