package models

import (
	"fmt"
	"strings"
)

type Ownership string

const (
	OwnershipCompany  Ownership = "Company"
	OwnershipCustomer Ownership = "Customer"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleUnavailable VehicleStatus = "unavailable"
)

// VehicleStatuses in the order the admin screens list them.
var VehicleStatuses = []VehicleStatus{VehicleAvailable, VehicleRented, VehicleMaintenance, VehicleUnavailable}

func (s VehicleStatus) Valid() bool {
	for _, known := range VehicleStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Vehicle mirrors the backend's vehicle document.
type Vehicle struct {
	ID           string        `json:"_id,omitempty"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	Year         int           `json:"year"`
	Price        float64       `json:"price"`
	Description  string        `json:"description,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	Ownership    Ownership     `json:"ownership"`
	Status       VehicleStatus `json:"status"`
	FuelType     string        `json:"fuelType"`
	Transmission string        `json:"transmission"`
	Seats        int           `json:"seats"`
	Doors        int           `json:"doors"`
	ExtraOptions []string      `json:"extraOptions"`
	OwnerID      string        `json:"ownerId,omitempty"`
}

// Title renders "2020 Toyota Axio", skipping missing parts.
func (v Vehicle) Title() string {
	parts := make([]string, 0, 3)
	if v.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", v.Year))
	}
	for _, p := range []string{v.Make, v.Model} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Bookable reports whether customers may reserve the vehicle.
func (v Vehicle) Bookable() bool {
	return v.Status == VehicleAvailable
}

// VehicleQuery holds the search filters sent to /vehicles/search.
type VehicleQuery struct {
	Make         string
	Model        string
	FuelType     string
	Transmission string
	MinSeats     int
	MinPrice     float64
	MaxPrice     float64
}

// Empty reports whether no filter is set.
func (q VehicleQuery) Empty() bool {
	return q == VehicleQuery{}
}
