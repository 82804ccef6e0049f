package model

import (
	"encoding/json"
	"errors"
	"time"
)

// Profile is the full record returned by the get-profile endpoints. The
// nested sections are opaque to the console and rendered as label/value
// tables, so they are kept as generic maps.
//
// Fields:
//
//	Onboarding             – onboarding status and current step.
//	Images                 – avatar and gallery URLs.
//	FamilyContactAddress   – family members table, address line and contacts.
//	Likes ... SendShortlistRequests – only their lengths are displayed.
type Profile struct {
	ID                     string                `json:"_id"`
	FullName               string                `json:"fullName,omitempty"`
	Email                  string                `json:"email,omitempty"`
	PhoneNo                FlexString            `json:"phoneNo,omitempty"`
	Role                   Role                  `json:"role,omitempty"`
	Status                 Status                `json:"status,omitempty"`
	Onboarding             *Onboarding           `json:"onboarding,omitempty"`
	Images                 *Images               `json:"images,omitempty"`
	BasicInformation       map[string]any        `json:"basic_information,omitempty"`
	EducationOccupation    map[string]any        `json:"education_occupation,omitempty"`
	FamilyContactAddress   *FamilyContactAddress `json:"family_contact_address,omitempty"`
	PartnerPreference      map[string]any        `json:"partner_preference,omitempty"`
	HobbiesInterestsSkills map[string]any        `json:"hobbies_interests_skills,omitempty"`
	Likes                  []json.RawMessage     `json:"likes,omitempty"`
	ShortListed            []json.RawMessage     `json:"shortListed,omitempty"`
	PendingShortlist       []json.RawMessage     `json:"pendingShortlistRequests,omitempty"`
	SendShortlistRequests  []json.RawMessage     `json:"sendShortlistRequests,omitempty"`
	CreatedAt              *time.Time            `json:"createdAt,omitempty"`
	UpdatedAt              *time.Time            `json:"updatedAt,omitempty"`
}

// UnmarshalJSON decodes a profile, dropping fields whose values do not
// fit their Go type instead of failing the whole record. Only a payload
// that is not a JSON object is an error.
func (p *Profile) UnmarshalJSON(b []byte) error {
	type plain Profile
	var out plain
	if err := json.Unmarshal(b, &out); err == nil {
		*p = Profile(out)
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	out = plain{}
	for name, raw := range fields {
		one, err := json.Marshal(map[string]json.RawMessage{name: raw})
		if err != nil {
			continue
		}
		// Type mismatches leave the rest of the field decoded; any other
		// failure drops the field.
		next := out
		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(one, &next); err == nil || errors.As(err, &typeErr) {
			out = next
		}
	}
	*p = Profile(out)
	return nil
}

// Onboarding tracks how far a user got through sign-up.
type Onboarding struct {
	Status FlexString `json:"status,omitempty"`
	Step   FlexString `json:"step,omitempty"`
}

// Images holds the avatar and the gallery.
type Images struct {
	ProfileURL          string   `json:"profileUrl,omitempty"`
	ImageCollectionURLs []string `json:"imageCollectionUrls,omitempty"`
}

// FamilyContactAddress is the family section of a profile.
type FamilyContactAddress struct {
	FamilyMembers  map[string]any `json:"familyMembers,omitempty"`
	AddressDetails string         `json:"addressDetails,omitempty"`
	ContactDetails []Contact      `json:"contactDetails,omitempty"`
}

// Contact is one entry of the family contact list.
type Contact struct {
	Name         string     `json:"name,omitempty"`
	Relationship string     `json:"relationship,omitempty"`
	PhoneNo      FlexString `json:"phoneNo,omitempty"`
}

// SocialCounts returns the connection counters shown on the detail page.
func (p Profile) SocialCounts() map[string]any {
	return map[string]any{
		"Likes Count":                len(p.Likes),
		"Shortlisted Users":          len(p.ShortListed),
		"Pending Shortlist Requests": len(p.PendingShortlist),
		"Sent Shortlist Requests":    len(p.SendShortlistRequests),
	}
}

// UserCount is the aggregate payload of the get-user-count endpoint.
type UserCount struct {
	TotalUsers   int `json:"totalUsers"`
	ActiveUsers  int `json:"activeUsers"`
	BlockedUsers int `json:"blockedUsers"`
	PendingUsers int `json:"pendingUsers"`
	MarriedUsers int `json:"marriedUsers"`
	MutedUsers   int `json:"mutedUsers"`
}
