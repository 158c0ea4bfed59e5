package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// Upload is one file part of a multipart request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CreateDriver registers a driver with both licence images, as multipart/form-data.
func (c *Client) CreateDriver(ctx context.Context, creds Credentials, app models.DriverApplication, front, back Upload) (models.Driver, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"name", app.Name},
		{"email", app.Email},
		{"phone", app.Phone},
		{"password", app.Password},
		{"age", strconv.Itoa(app.Age)},
		{"address", app.Address},
		{"dailyRate", strconv.FormatFloat(app.DailyRate, 'f', -1, 64)},
		{"yearsOfExperience", strconv.Itoa(app.YearsOfExperience)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return models.Driver{}, fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	for field, up := range map[string]Upload{"licenseFront": front, "licenseBack": back} {
		if up.Content == nil {
			continue
		}
		part, err := mw.CreateFormFile(field, up.Filename)
		if err != nil {
			return models.Driver{}, fmt.Errorf("create part %s: %w", field, err)
		}
		if _, err := io.Copy(part, up.Content); err != nil {
			return models.Driver{}, fmt.Errorf("copy part %s: %w", field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return models.Driver{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/drivers/create", nil), &buf)
	if err != nil {
		return models.Driver{}, fmt.Errorf("build driver request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out models.Driver
	if err := c.send(req, creds, &out, "driver"); err != nil {
		return models.Driver{}, err
	}
	return out, nil
}
