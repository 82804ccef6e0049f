package view

import (
	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/userlist"
)

// Login is the sign-in form.
type Login struct {
	Email string
	Error string
}

// StatCard is one dashboard tile linking to the filtered user list.
type StatCard struct {
	Label  string
	Value  int
	Color  string
	Status string
}

// Dashboard shows the aggregate counters.
type Dashboard struct {
	Cards []StatCard
	Error string
}

// DashboardCards lays out the six counters of c.
func DashboardCards(c model.UserCount) []StatCard {
	return []StatCard{
		{"Total Users", c.TotalUsers, "#1976d2", userlist.StatusAll},
		{"Active Users", c.ActiveUsers, "#2e7d32", string(model.StatusActive)},
		{"Blocked Users", c.BlockedUsers, "#d32f2f", string(model.StatusBlocked)},
		{"Pending Users", c.PendingUsers, "#ed6c02", string(model.StatusPending)},
		{"Married Users", c.MarriedUsers, "#6a1b9a", string(model.StatusMarried)},
		{"Muted Users", c.MutedUsers, "#0288d1", string(model.StatusMuted)},
	}
}

// Users is the list screen with the optional partner dialog.
type Users struct {
	View    userlist.View
	Partner userlist.PartnerFlow
	Notice  *userlist.Notice
}

// Heading returns "Users" or "Users (<status>)" for a narrowed list.
func (u Users) Heading() string {
	s := u.View.Filter.Status
	if s == "" || s == userlist.StatusAll {
		return "Users"
	}
	return "Users (" + s + ")"
}

// Profile is the detail screen.
type Profile struct {
	Profile *model.Profile
	Error   string
	Back    string
}

// Avatar returns the profile picture or the default avatar.
func (p Profile) Avatar() string {
	if p.Profile != nil && p.Profile.Images != nil && p.Profile.Images.ProfileURL != "" {
		return p.Profile.Images.ProfileURL
	}
	return DefaultAvatar
}

// Gallery returns the image collection or the placeholder set.
func (p Profile) Gallery() []string {
	if p.Profile != nil && p.Profile.Images != nil && len(p.Profile.Images.ImageCollectionURLs) > 0 {
		return p.Profile.Images.ImageCollectionURLs
	}
	out := make([]string, placeholderCount)
	for i := range out {
		out[i] = PlaceholderImage
	}
	return out
}
