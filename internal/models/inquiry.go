package models

type InquiryStatus string

const (
	InquiryPending    InquiryStatus = "pending"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryResolved   InquiryStatus = "resolved"
	InquiryClosed     InquiryStatus = "closed"
)

var InquiryStatuses = []InquiryStatus{InquiryPending, InquiryInProgress, InquiryResolved, InquiryClosed}

func (s InquiryStatus) Valid() bool {
	for _, known := range InquiryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type InquiryPriority string

const (
	PriorityLow    InquiryPriority = "low"
	PriorityMedium InquiryPriority = "medium"
	PriorityHigh   InquiryPriority = "high"
	PriorityUrgent InquiryPriority = "urgent"
)

// Inquiry is a driver-raised ticket (breakdown, accident, general question).
type Inquiry struct {
	ID            string          `json:"_id"`
	Driver        UserRef         `json:"driverId"`
	Type          string          `json:"type"`
	Subject       string          `json:"subject"`
	Description   string          `json:"description"`
	Status        InquiryStatus   `json:"status"`
	Priority      InquiryPriority `json:"priority"`
	AdminResponse string          `json:"adminResponse,omitempty"`
	Images        []string        `json:"images"`
	VehicleID     string          `json:"vehicleId,omitempty"`
	CreatedAt     Timestamp       `json:"createdAt"`
}

// Open reports whether staff still need to act on the inquiry.
func (i Inquiry) Open() bool {
	return i.Status == InquiryPending || i.Status == InquiryInProgress
}

// InquiryUpdate is the admin's response payload for PUT /inquiries/:id.
type InquiryUpdate struct {
	Status        InquiryStatus `json:"status"`
	AdminResponse string        `json:"adminResponse"`
}
