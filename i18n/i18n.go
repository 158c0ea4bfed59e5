// Package i18n holds the UI strings in English and Sinhala.
package i18n

import "strings"

const DefaultLang = "en"

// Supported lists the languages with a catalogue.
var Supported = []string{"en", "si"}

var catalog = map[string]map[string]string{
	"en": {
		// validation codes
		"required":             "Required",
		"invalid_phone":        "Enter a Sri Lankan number (+94XXXXXXXXX or 0XXXXXXXXX)",
		"invalid_email":        "Enter a valid email address",
		"too_short":            "Too short",
		"must_be_positive":     "Must be greater than zero",
		"out_of_range":         "Out of range",
		"return_before_pickup": "Return date must be after pickup date",
		"in_past":              "Date cannot be in the past",
		"must_be_zero":         "Amount must be 0 for unpaid",
		"exceeds_total":        "Amount cannot exceed 110% of the total price",
		"not_full_amount":      "A full payment must be within 10% of the total price",
		"below_minimum":        "A partial payment must be at least 10% of the total price",
		"not_partial":          "A partial payment must be less than the total price",
		"in_future":            "Payment date cannot be in the future",
		"before_reservation":   "Payment date cannot be before the reservation was made",
		"invalid_status":       "Unknown status",
		"passwords_differ":     "Passwords do not match",

		// flash messages
		"flash.login_ok":         "Welcome back",
		"flash.logged_out":       "You have been signed out",
		"flash.session_expired":  "Your session has expired. Please sign in again",
		"flash.registered":       "Account created. You can sign in now",
		"flash.reset_sent":       "If the address exists, a reset link is on its way",
		"flash.password_reset":   "Password updated. Please sign in",
		"flash.reservation_made": "Reservation requested",
		"flash.action_done":      "Reservation updated",
		"flash.action_denied":    "That action is not available for this reservation",
		"flash.payment_recorded": "Payment recorded",
		"flash.vehicle_saved":    "Vehicle saved",
		"flash.vehicle_deleted":  "Vehicle deleted",
		"flash.driver_created":   "Driver registered",
		"flash.inquiry_updated":  "Inquiry updated",
		"flash.inquiry_deleted":  "Inquiry deleted",
		"flash.unexpected":       "Something went wrong. Please try again",
		"flash.not_found":        "Not found",
		"flash.invalid_form":     "Please correct the highlighted fields",

		// navigation
		"nav.dashboard":    "Dashboard",
		"nav.vehicles":     "Vehicles",
		"nav.reservations": "Reservations",
		"nav.drivers":      "Drivers",
		"nav.inquiries":    "Inquiries",
		"nav.users":        "Users",
		"nav.trips":        "My trips",
		"nav.profile":      "Profile",
		"nav.book":         "Book a vehicle",
		"nav.login":        "Sign in",
		"nav.logout":       "Sign out",
		"nav.register":     "Register",

		// reservation actions and states
		"action.cancel":         "Cancel",
		"action.confirm":        "Confirm",
		"action.complete":       "Complete",
		"action.start_trip":     "Start Trip",
		"action.end_trip":       "End Trip",
		"action.record_payment": "Record payment",
		"status.pending":        "Pending",
		"status.confirmed":      "Confirmed",
		"status.cancelled":      "Cancelled",
		"status.completed":      "Completed",
		"status.started":        "Started",
		"status.unpaid":         "Unpaid",
		"status.partially_paid": "Partially paid",
		"status.paid":           "Paid",
		"status.available":      "Available",
		"status.rented":         "Rented",
		"status.maintenance":    "Maintenance",
		"status.unavailable":    "Unavailable",
		"status.in_progress":    "In progress",
		"status.resolved":       "Resolved",
		"status.closed":         "Closed",

		// page titles
		"title.home":               "Ramanayake Travels",
		"title.vehicles":           "Our fleet",
		"title.login":              "Sign in",
		"title.register":           "Create an account",
		"title.forgot":             "Forgot password",
		"title.reset":              "Choose a new password",
		"title.my_bookings":        "My reservations",
		"title.new_booking":        "Book a vehicle",
		"title.driver":             "Assigned trips",
		"title.technician":         "Technician",
		"title.dashboard":          "Dashboard",
		"title.admin_vehicles":     "Vehicles",
		"title.admin_reservations": "Reservations",
		"title.drivers":            "Drivers",
		"title.inquiries":          "Inquiries",
		"title.users":              "Users",
		"empty.list":               "Nothing to show yet",

		// form fields
		"field.name":            "Name",
		"field.email":           "Email",
		"field.phone":           "Phone",
		"field.password":        "Password",
		"field.confirm":         "Confirm password",
		"field.account_type":    "Account type",
		"field.make":            "Make",
		"field.model":           "Model",
		"field.year":            "Year",
		"field.price":           "Daily price",
		"field.fuel":            "Fuel",
		"field.transmission":    "Transmission",
		"field.seats":           "Seats",
		"field.doors":           "Doors",
		"field.extras":          "Extras",
		"field.image":           "Image URL",
		"field.description":     "Description",
		"field.ownership":       "Ownership",
		"field.status":          "Status",
		"field.min_price":       "Min price",
		"field.max_price":       "Max price",
		"field.vehicle":         "Vehicle",
		"field.pickup_date":     "Pickup date",
		"field.return_date":     "Return date",
		"field.pickup_location": "Pickup location",
		"field.return_location": "Return location",
		"field.driver_required": "I need a driver",
		"field.driver":          "Driver",
		"field.payment_status":  "Payment status",
		"field.receipt":         "Receipt number",
		"field.amount":          "Amount paid",
		"field.payment_date":    "Payment date",
		"field.payment_method":  "Payment method",
		"field.notes":           "Notes",
		"field.age":             "Age",
		"field.address":         "Address",
		"field.daily_rate":      "Daily rate",
		"field.experience":      "Years of experience",
		"field.license_front":   "Licence (front)",
		"field.license_back":    "Licence (back)",
		"field.response":        "Response",
		"field.role":            "Role",
		"field.joined":          "Joined",

		"action.search":      "Search",
		"action.send_link":   "Send reset link",
		"action.save":        "Save",
		"action.edit":        "Edit",
		"action.delete":      "Delete",
		"action.add_vehicle": "Add vehicle",
		"action.add_driver":  "Register driver",

		"role.admin":         "Admin",
		"role.customer":      "Customer",
		"role.driver":        "Driver",
		"role.vehicle_owner": "Vehicle owner",
		"role.technician":    "Technician",

		"tab.all":             "All",
		"tab.company":         "Company fleet",
		"tab.customer":        "Customer listed",
		"section.active":      "Upcoming",
		"section.past":        "History",
		"section.maintenance": "In maintenance",
		"section.revenue":     "Collected",
		"home.tagline":        "Cars, vans and drivers across Sri Lanka, booked in minutes",
	},
	"si": {
		"required":             "අවශ්‍යයි",
		"invalid_phone":        "ශ්‍රී ලංකා දුරකථන අංකයක් ඇතුළත් කරන්න",
		"invalid_email":        "වලංගු ඊමේල් ලිපිනයක් ඇතුළත් කරන්න",
		"too_short":            "ඉතා කෙටියි",
		"must_be_positive":     "ශුන්‍යයට වඩා වැඩි විය යුතුය",
		"return_before_pickup": "ආපසු දිනය ලබාගන්නා දිනයට පසුව විය යුතුය",
		"in_past":              "අතීත දිනයක් විය නොහැක",
		"exceeds_total":        "මුදල මුළු මිලෙන් 110% ඉක්මවිය නොහැක",
		"in_future":            "ගෙවීම් දිනය අනාගත දිනයක් විය නොහැක",

		"flash.login_ok":        "නැවත සාදරයෙන් පිළිගනිමු",
		"flash.logged_out":      "ඔබ ඉවත් විය",
		"flash.session_expired": "සැසිය කල් ඉකුත් විය. නැවත පිවිසෙන්න",
		"flash.unexpected":      "යමක් වැරදී ඇත. නැවත උත්සාහ කරන්න",
		"flash.action_done":     "වෙන්කිරීම යාවත්කාලීන විය",

		"nav.dashboard":    "උපකරණ පුවරුව",
		"nav.vehicles":     "වාහන",
		"nav.reservations": "වෙන්කිරීම්",
		"nav.trips":        "මගේ ගමන්",
		"nav.book":         "වාහනයක් වෙන් කරන්න",
		"nav.login":        "පිවිසෙන්න",
		"nav.logout":       "ඉවත් වන්න",

		"action.cancel":     "අවලංගු කරන්න",
		"action.start_trip": "ගමන අරඹන්න",
		"action.end_trip":   "ගමන අවසන් කරන්න",
		"status.pending":    "අපේක්ෂිත",
		"status.confirmed":  "තහවුරුයි",
		"status.cancelled":  "අවලංගුයි",
		"status.completed":  "සම්පූර්ණයි",

		"title.home":     "රණනායක ට්‍රැවල්ස්",
		"title.vehicles": "අපගේ වාහන",
		"title.login":    "පිවිසෙන්න",
	},
}

// T translates code into lang. Unknown languages use English; unknown codes
// are returned unchanged.
func T(lang, code string) string {
	if m, ok := catalog[normalize(lang)]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Supports reports whether lang has a catalogue.
func Supports(lang string) bool {
	_, ok := catalog[normalize(lang)]
	return ok
}

// DetectLanguage picks the first supported language of an Accept-Language
// header, or English.
func DetectLanguage(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := normalize(tag); Supports(lang) {
			return lang
		}
	}
	return DefaultLang
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	base, _, _ := strings.Cut(tag, "-")
	return base
}
