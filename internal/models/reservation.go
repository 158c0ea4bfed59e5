package models

import (
	"encoding/json"
	"math"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

var ReservationStatuses = []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}

type TripStatus string

const (
	TripPending   TripStatus = "pending"
	TripStarted   TripStatus = "started"
	TripCompleted TripStatus = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
)

var PaymentStatuses = []PaymentStatus{PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid}

// BillDetails is the payment record staff attach to a reservation.
type BillDetails struct {
	ReceiptNumber string    `json:"receiptNumber"`
	AmountPaid    float64   `json:"amountPaid"`
	PaymentDate   Timestamp `json:"paymentDate"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// Reservation mirrors the backend's reservation document. Vehicle, User and
// Driver are normalised references whatever shape the endpoint used.
type Reservation struct {
	ID             string            `json:"_id"`
	User           UserRef           `json:"userId"`
	Vehicle        VehicleRef        `json:"vehicleId"`
	PickupDate     Timestamp         `json:"pickupDate"`
	ReturnDate     Timestamp         `json:"returnDate"`
	PickupLocation string            `json:"pickupLocation"`
	ReturnLocation string            `json:"returnLocation"`
	DriverRequired bool              `json:"driverRequired"`
	Driver         DriverRef         `json:"driverId"`
	Status         ReservationStatus `json:"status"`
	TripStatus     TripStatus        `json:"tripStatus"`
	PaymentStatus  PaymentStatus     `json:"paymentStatus"`
	BillDetails    *BillDetails      `json:"billDetails,omitempty"`
	TotalPrice     float64           `json:"totalPrice"`
	CreatedAt      Timestamp         `json:"createdAt"`
}

// UnmarshalJSON folds the alternative vehicle shapes some endpoints use
// ("vehicle", "vehicleDetails") into Vehicle, preferring a populated one.
func (r *Reservation) UnmarshalJSON(data []byte) error {
	type plain Reservation
	var wire struct {
		plain
		AltVehicle     *VehicleRef `json:"vehicle"`
		VehicleDetails *VehicleRef `json:"vehicleDetails"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = Reservation(wire.plain)
	for _, alt := range []*VehicleRef{wire.AltVehicle, wire.VehicleDetails} {
		if alt == nil || r.Vehicle.Populated() {
			continue
		}
		if alt.Populated() {
			if alt.ID == "" {
				alt.Vehicle.ID = r.Vehicle.ID
				alt.ID = r.Vehicle.ID
			}
			r.Vehicle = *alt
		} else if r.Vehicle.ID == "" {
			r.Vehicle = *alt
		}
	}
	if r.TripStatus == "" {
		r.TripStatus = TripPending
	}
	if r.PaymentStatus == "" {
		r.PaymentStatus = PaymentUnpaid
	}
	return nil
}

// Days is the billable rental length, counting a partial day as a full one.
func (r Reservation) Days() int {
	if r.PickupDate.IsZero() || r.ReturnDate.IsZero() {
		return 0
	}
	d := r.ReturnDate.Sub(r.PickupDate.Time)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Active reports whether the reservation still awaits an outcome.
func (r Reservation) Active() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// ReservationRequest is the payload for POST /reservations.
type ReservationRequest struct {
	VehicleID      string    `json:"vehicleId"`
	PickupDate     time.Time `json:"pickupDate"`
	ReturnDate     time.Time `json:"returnDate"`
	PickupLocation string    `json:"pickupLocation"`
	ReturnLocation string    `json:"returnLocation"`
	DriverRequired bool      `json:"driverRequired"`
	DriverID       string    `json:"driverId,omitempty"`
}

// PaymentUpdate is the payload for PUT /reservations/:id/payment-status.
type PaymentUpdate struct {
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	BillDetails   BillDetails   `json:"billDetails"`
}
