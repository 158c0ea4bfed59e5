package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend populates references inconsistently: depending on the endpoint
// a reference arrives as a bare id string, as the populated document, or as
// null. The Ref types below normalise all of these at decode time so views
// only ever deal with one shape.

func isNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

func isString(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '"'
}

// VehicleRef is either an id-only reference or a populated vehicle.
type VehicleRef struct {
	ID      string
	Vehicle *Vehicle
}

// Populated reports whether the full vehicle document is present.
func (r VehicleRef) Populated() bool { return r.Vehicle != nil }

// Title returns the vehicle title or a placeholder built from the id.
func (r VehicleRef) Title() string {
	if r.Vehicle != nil {
		if t := r.Vehicle.Title(); t != "" {
			return t
		}
	}
	if r.ID == "" {
		return "Unknown vehicle"
	}
	return "Vehicle " + r.ID
}

func (r *VehicleRef) UnmarshalJSON(data []byte) error {
	*r = VehicleRef{}
	switch {
	case isNull(data):
		return nil
	case isString(data):
		return json.Unmarshal(data, &r.ID)
	}
	var v Vehicle
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("vehicle ref: %w", err)
	}
	r.ID = v.ID
	r.Vehicle = &v
	return nil
}

func (r VehicleRef) MarshalJSON() ([]byte, error) {
	if r.Vehicle != nil {
		return json.Marshal(r.Vehicle)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UserRef is either an id-only reference or a populated user.
type UserRef struct {
	ID   string
	User *User
}

func (r UserRef) Populated() bool { return r.User != nil }

// Name returns the user's display name, or the id when not populated.
func (r UserRef) Name() string {
	if r.User != nil {
		return r.User.DisplayName()
	}
	return r.ID
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	*r = UserRef{}
	switch {
	case isNull(data):
		return nil
	case isString(data):
		return json.Unmarshal(data, &r.ID)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return fmt.Errorf("user ref: %w", err)
	}
	r.ID = u.ID
	r.User = &u
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// DriverRef is either an id-only reference or a populated driver profile.
// A populated driver usually carries its own populated user.
type DriverRef struct {
	ID     string
	Driver *Driver
}

func (r DriverRef) Populated() bool { return r.Driver != nil }

// UserID returns the id of the user behind the driver profile, when known.
func (r DriverRef) UserID() string {
	if r.Driver == nil {
		return ""
	}
	return r.Driver.User.ID
}

// Name returns the driver's name, or the id when not populated.
func (r DriverRef) Name() string {
	if r.Driver != nil && r.Driver.User.Populated() {
		return r.Driver.User.Name()
	}
	return r.ID
}

func (r *DriverRef) UnmarshalJSON(data []byte) error {
	*r = DriverRef{}
	switch {
	case isNull(data):
		return nil
	case isString(data):
		return json.Unmarshal(data, &r.ID)
	}
	var d Driver
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("driver ref: %w", err)
	}
	r.ID = d.ID
	r.Driver = &d
	return nil
}

func (r DriverRef) MarshalJSON() ([]byte, error) {
	if r.Driver != nil {
		return json.Marshal(r.Driver)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}
