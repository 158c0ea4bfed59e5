package gate

// Action is an operation a subject wants to perform on a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"

	// Reservation lifecycle.
	ActionCancel        Action = "cancel"
	ActionConfirm       Action = "confirm"
	ActionComplete      Action = "complete"
	ActionStartTrip     Action = "start_trip"
	ActionEndTrip       Action = "end_trip"
	ActionRecordPayment Action = "record_payment"

	ActionRespond Action = "respond"
)
