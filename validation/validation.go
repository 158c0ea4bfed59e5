package validation

import (
	"regexp"
	"strings"
	"time"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// First returns the message of the first violated field in order, or "".
func (v Violations) First(order ...string) string {
	for _, f := range order {
		if msg, ok := v[f]; ok {
			return msg
		}
	}
	for _, msg := range v {
		return msg
	}
	return ""
}

var (
	phonePattern = regexp.MustCompile(`^(?:\+94|0)\d{9}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Phone accepts Sri Lankan numbers: +94 or a leading 0 followed by nine digits.
func Phone(field, value string, v Violations) {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if value == "" {
		v[field] = "required"
		return
	}
	if !phonePattern.MatchString(value) {
		v[field] = "invalid_phone"
	}
}

func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		v[field] = "required"
		return
	}
	if !emailPattern.MatchString(value) {
		v[field] = "invalid_email"
	}
}

func MinLength(field, value string, n int, v Violations) {
	if len([]rune(value)) < n {
		v[field] = "too_short"
	}
}

// DateOrder requires both dates and a return strictly after pickup.
func DateOrder(pickupField, returnField string, pickup, ret time.Time, v Violations) {
	if pickup.IsZero() {
		v[pickupField] = "required"
	}
	if ret.IsZero() {
		v[returnField] = "required"
	}
	if !pickup.IsZero() && !ret.IsZero() && !ret.After(pickup) {
		v[returnField] = "return_before_pickup"
	}
}

// NotInPast rejects dates before the start of now's day.
func NotInPast(field string, date, now time.Time, v Violations) {
	if date.IsZero() {
		return
	}
	y, m, d := now.Date()
	if date.Before(time.Date(y, m, d, 0, 0, 0, 0, now.Location())) {
		v[field] = "in_past"
	}
}

// PaymentForm is the admin's payment recording form.
type PaymentForm struct {
	Status        string
	ReceiptNumber string
	AmountPaid    float64
	PaymentDate   time.Time
}

const (
	paymentUnpaid        = "unpaid"
	paymentPartiallyPaid = "partially_paid"
	paymentPaid          = "paid"
)

// Payment checks a payment record against the reservation total. Amounts
// above 110% of the total are never accepted; a full payment must land
// within 10% of the total and a partial one between 10% and the total.
func Payment(form PaymentForm, total float64, createdAt, now time.Time, v Violations) {
	switch form.Status {
	case paymentUnpaid:
		if form.AmountPaid != 0 {
			v["amountPaid"] = "must_be_zero"
		}
		return
	case paymentPaid, paymentPartiallyPaid:
	default:
		v["paymentStatus"] = "invalid_status"
		return
	}

	Required("receiptNumber", form.ReceiptNumber, v)

	switch {
	case form.AmountPaid <= 0:
		v["amountPaid"] = "must_be_positive"
	case total > 0 && form.AmountPaid > total*1.1:
		v["amountPaid"] = "exceeds_total"
	case total > 0 && form.Status == paymentPaid && form.AmountPaid < total*0.9:
		v["amountPaid"] = "not_full_amount"
	case total > 0 && form.Status == paymentPartiallyPaid && form.AmountPaid < total*0.1:
		v["amountPaid"] = "below_minimum"
	case total > 0 && form.Status == paymentPartiallyPaid && form.AmountPaid >= total:
		v["amountPaid"] = "not_partial"
	}

	switch {
	case form.PaymentDate.IsZero():
		v["paymentDate"] = "required"
	case form.PaymentDate.After(now):
		v["paymentDate"] = "in_future"
	case !createdAt.IsZero() && form.PaymentDate.Before(startOfDay(createdAt)):
		v["paymentDate"] = "before_reservation"
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
