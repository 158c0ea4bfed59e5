package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

const featuredCount = 6

type VehicleHandler struct {
	*Base
}

func NewVehicleHandler(b *Base) *VehicleHandler {
	return &VehicleHandler{Base: b}
}

func (h *VehicleHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	data := map[string]any{}
	vehicles, err := h.API.ListVehicles(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	featured := make([]models.Vehicle, 0, featuredCount)
	for _, v := range vehicles {
		if v.Bookable() {
			featured = append(featured, v)
		}
		if len(featured) == featuredCount {
			break
		}
	}
	data["Vehicles"] = featured
	h.render(w, r, "home.html", data)
}

// parseQuery reads the search form. Unparseable numbers count as unset.
func parseQuery(r *http.Request) models.VehicleQuery {
	q := r.URL.Query()
	return models.VehicleQuery{
		Make:         strings.TrimSpace(q.Get("make")),
		Model:        strings.TrimSpace(q.Get("model")),
		FuelType:     q.Get("fuelType"),
		Transmission: q.Get("transmission"),
		MinSeats:     cast.ToInt(q.Get("seats")),
		MinPrice:     cast.ToFloat64(q.Get("minPrice")),
		MaxPrice:     cast.ToFloat64(q.Get("maxPrice")),
	}
}

// List shows the fleet, or the search results when a filter is set.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseQuery(r)
	var (
		vehicles []models.Vehicle
		err      error
	)
	if query.Empty() {
		vehicles, err = h.API.ListVehicles(r.Context(), creds(r))
	} else {
		vehicles, err = h.API.SearchVehicles(r.Context(), creds(r), query)
	}
	data := map[string]any{"Query": query}
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	data["Vehicles"] = vehicles
	h.render(w, r, "vehicles.html", data)
}

func (h *VehicleHandler) Show(w http.ResponseWriter, r *http.Request) {
	v, err := h.API.GetVehicle(r.Context(), creds(r), mux.Vars(r)["id"])
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			h.NotFound(w, r)
			return
		}
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		h.render(w, r, "vehicle.html", map[string]any{"Error": msg})
		return
	}
	_, signedIn := currentUser(r)
	h.render(w, r, "vehicle.html", map[string]any{"Vehicle": v, "CanBook": signedIn && v.Bookable()})
}
