package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/validation"
)

// Vehicles lists the fleet on two tabs: company-owned and customer-listed.
func (h *AdminHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	var (
		vehicles []models.Vehicle
		err      error
	)
	if tab == "customer" {
		vehicles, err = h.API.CustomerVehicles(r.Context(), creds(r))
	} else {
		tab = "company"
		vehicles, err = h.API.CompanyVehicles(r.Context(), creds(r))
	}
	data := map[string]any{"Tab": tab}
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	data["Vehicles"] = vehicles
	h.render(w, r, "admin/vehicles.html", data)
}

func vehicleFromForm(r *http.Request) models.Vehicle {
	var extras []string
	for _, opt := range strings.Split(r.FormValue("extraOptions"), ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			extras = append(extras, opt)
		}
	}
	v := models.Vehicle{
		Make:         strings.TrimSpace(r.FormValue("make")),
		Model:        strings.TrimSpace(r.FormValue("model")),
		Year:         cast.ToInt(r.FormValue("year")),
		Price:        cast.ToFloat64(r.FormValue("price")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		ImageURL:     strings.TrimSpace(r.FormValue("imageUrl")),
		Ownership:    models.Ownership(r.FormValue("ownership")),
		Status:       models.VehicleStatus(r.FormValue("status")),
		FuelType:     r.FormValue("fuelType"),
		Transmission: r.FormValue("transmission"),
		Seats:        cast.ToInt(r.FormValue("seats")),
		Doors:        cast.ToInt(r.FormValue("doors")),
		ExtraOptions: extras,
	}
	if v.Ownership != models.OwnershipCustomer {
		v.Ownership = models.OwnershipCompany
	}
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	return v
}

func validateVehicle(v models.Vehicle, now time.Time) validation.Violations {
	errs := validation.Violations{}
	validation.Required("make", v.Make, errs)
	validation.Required("model", v.Model, errs)
	validation.PositiveFloat("price", v.Price, errs)
	validation.RangeFloat("year", float64(v.Year), 1950, float64(now.Year()+1), errs)
	validation.RangeFloat("seats", float64(v.Seats), 1, 60, errs)
	if !v.Status.Valid() {
		errs["status"] = "invalid_status"
	}
	return errs
}

func (h *AdminHandler) vehicleForm(w http.ResponseWriter, r *http.Request, status int, v models.Vehicle, errs validation.Violations) {
	h.renderStatus(w, r, status, "admin/vehicle_form.html", map[string]any{
		"Vehicle":  v,
		"Errors":   errs,
		"Statuses": models.VehicleStatuses,
	})
}

// NewVehicle shows and submits the create form.
func (h *AdminHandler) NewVehicle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.vehicleForm(w, r, http.StatusOK, models.Vehicle{Ownership: models.OwnershipCompany, Status: models.VehicleAvailable}, nil)
		return
	}
	v := vehicleFromForm(r)
	if errs := validateVehicle(v, h.now()); !errs.Empty() {
		h.vehicleForm(w, r, http.StatusUnprocessableEntity, v, errs)
		return
	}
	if _, err := h.API.CreateVehicle(r.Context(), creds(r), v); err != nil {
		h.fail(w, r, err, "/admin/vehicles/new")
		return
	}
	h.success(w, r, "flash.vehicle_saved", "/admin/vehicles?tab="+strings.ToLower(string(v.Ownership)))
}

// EditVehicle shows and submits the edit form.
func (h *AdminHandler) EditVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if r.Method == http.MethodGet {
		v, err := h.API.GetVehicle(r.Context(), creds(r), id)
		if err != nil {
			h.fail(w, r, err, "/admin/vehicles")
			return
		}
		h.vehicleForm(w, r, http.StatusOK, v, nil)
		return
	}
	v := vehicleFromForm(r)
	v.ID = id
	if errs := validateVehicle(v, h.now()); !errs.Empty() {
		h.vehicleForm(w, r, http.StatusUnprocessableEntity, v, errs)
		return
	}
	if _, err := h.API.UpdateVehicle(r.Context(), creds(r), id, v); err != nil {
		h.fail(w, r, err, "/admin/vehicles/"+id+"/edit")
		return
	}
	h.success(w, r, "flash.vehicle_saved", "/admin/vehicles?tab="+strings.ToLower(string(v.Ownership)))
}

func (h *AdminHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	back := backTo(r, "/admin/vehicles")
	if err := h.API.DeleteVehicle(r.Context(), creds(r), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.success(w, r, "flash.vehicle_deleted", back)
}
