package api

import (
	"context"
	"net/http"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// AdminInquiries lists every inquiry for staff.
func (c *Client) AdminInquiries(ctx context.Context, creds Credentials) ([]models.Inquiry, error) {
	var out []models.Inquiry
	if err := c.doJSON(ctx, http.MethodGet, "/inquiries/admin", nil, creds, nil, &out, "inquiries"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInquiry records the admin's response and status.
func (c *Client) UpdateInquiry(ctx context.Context, creds Credentials, id string, update models.InquiryUpdate) error {
	esc, err := escapeID(id)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, "/inquiries/"+esc, nil, creds, update, nil)
}

// DeleteInquiry removes an inquiry.
func (c *Client) DeleteInquiry(ctx context.Context, creds Credentials, id string) error {
	esc, err := escapeID(id)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/inquiries/"+esc, nil, creds, nil, nil)
}
