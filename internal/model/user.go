package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Role is the closed set of account roles understood by the admin API.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Roles lists every role in the order the role selector shows them.
var Roles = []Role{RoleUser, RoleAdmin, RoleSuperadmin}

// ErrUnknownRole is returned by ParseRole for values outside Roles.
var ErrUnknownRole = errors.New("unknown role")

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole trims and lower-cases s and checks it against the enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Status is the lifecycle stage of an account.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
	StatusPending Status = "pending"
	StatusMuted   Status = "muted"
	StatusMarried Status = "married"
)

// Statuses lists every status in the order the status selector shows them.
var Statuses = []Status{StatusActive, StatusBlocked, StatusMarried, StatusMuted, StatusPending}

// ErrUnknownStatus is returned by ParseStatus for values outside Statuses.
var ErrUnknownStatus = errors.New("unknown status")

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus trims and lower-cases s and checks it against the enumeration.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrUnknownStatus
	}
	return st, nil
}

// BasicInformation is the slice of the profile's basic section that the
// user list needs.
type BasicInformation struct {
	Gender string `json:"gender,omitempty"`
}

// User is one row of the admin user listing. Every display field may be
// missing in the payload.
type User struct {
	ID               string            `json:"_id"`
	FullName         string            `json:"fullName,omitempty"`
	Email            string            `json:"email,omitempty"`
	PhoneNo          FlexString        `json:"phoneNo,omitempty"`
	Role             Role              `json:"role,omitempty"`
	Status           Status            `json:"status,omitempty"`
	BasicInformation *BasicInformation `json:"basic_information,omitempty"`
}

// Gender returns basic_information.gender or "" when absent.
func (u User) Gender() string {
	if u.BasicInformation == nil {
		return ""
	}
	return u.BasicInformation.Gender
}

// FlexString decodes a JSON string or number into its textual form. The
// API sends phone numbers either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
