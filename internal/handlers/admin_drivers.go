package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/validation"
)

// maxLicenseUpload bounds the two licence images together.
const maxLicenseUpload = 10 << 20

func (h *AdminHandler) driversPage(w http.ResponseWriter, r *http.Request, status int, form models.DriverApplication, errs validation.Violations) {
	data := map[string]any{"Form": form, "Errors": errs}
	drivers, err := h.API.ReservationDrivers(r.Context(), creds(r))
	if err != nil {
		msg, done := h.loadError(w, r, err)
		if done {
			return
		}
		data["Error"] = msg
	}
	data["Drivers"] = drivers
	h.renderStatus(w, r, status, "admin/drivers.html", data)
}

// Drivers lists drivers and registers new ones with their licence images.
func (h *AdminHandler) Drivers(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.driversPage(w, r, http.StatusOK, models.DriverApplication{}, nil)
		return
	}

	if err := r.ParseMultipartForm(maxLicenseUpload); err != nil {
		h.driversPage(w, r, http.StatusBadRequest, models.DriverApplication{}, validation.Violations{"licenseFront": "required"})
		return
	}
	app := models.DriverApplication{
		Name:              strings.TrimSpace(r.FormValue("name")),
		Email:             strings.TrimSpace(r.FormValue("email")),
		Phone:             strings.TrimSpace(r.FormValue("phone")),
		Password:          r.FormValue("password"),
		Age:               cast.ToInt(r.FormValue("age")),
		Address:           strings.TrimSpace(r.FormValue("address")),
		DailyRate:         cast.ToFloat64(r.FormValue("dailyRate")),
		YearsOfExperience: cast.ToInt(r.FormValue("yearsOfExperience")),
	}

	errs := validation.Violations{}
	validation.Required("name", app.Name, errs)
	validation.Email("email", app.Email, errs)
	validation.Phone("phone", app.Phone, errs)
	validation.MinLength("password", app.Password, 6, errs)
	validation.RangeFloat("age", float64(app.Age), 18, 75, errs)
	validation.Required("address", app.Address, errs)
	validation.PositiveFloat("dailyRate", app.DailyRate, errs)

	front, frontHeader, ferr := r.FormFile("licenseFront")
	if ferr != nil {
		errs["licenseFront"] = "required"
	} else {
		defer front.Close()
	}
	back, backHeader, berr := r.FormFile("licenseBack")
	if berr != nil {
		errs["licenseBack"] = "required"
	} else {
		defer back.Close()
	}
	if !errs.Empty() {
		app.Password = ""
		h.driversPage(w, r, http.StatusUnprocessableEntity, app, errs)
		return
	}

	if _, err := h.API.CreateDriver(r.Context(), creds(r), app, upload(front, frontHeader), upload(back, backHeader)); err != nil {
		h.fail(w, r, err, "/admin/drivers")
		return
	}
	h.success(w, r, "flash.driver_created", "/admin/drivers")
}

func upload(f multipart.File, hdr *multipart.FileHeader) api.Upload {
	return api.Upload{Filename: hdr.Filename, Content: f}
}
