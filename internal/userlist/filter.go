package userlist

import (
	"strings"

	"github.com/iliyamo/matrimony-admin/internal/model"
)

// StatusAll is the status filter value that disables status filtering.
const StatusAll = "all"

// Filter is the ephemeral narrowing applied to the fetched collection.
type Filter struct {
	Status string // from the "status" query parameter; "" or "all" means none
	Search string // free text; blank after trimming means none
}

// statusActive reports whether the status filter narrows anything.
func (f Filter) statusActive() bool {
	s := strings.TrimSpace(f.Status)
	return s != "" && s != StatusAll
}

// Recompute derives the visible rows from users. Status is an exact match;
// search is a case-insensitive substring over name, email, role, status,
// gender and phone. Both apply together. The result preserves the order of
// users, never aliases its backing array, and is never nil.
func Recompute(users []model.User, f Filter) []model.User {
	status := strings.TrimSpace(f.Status)
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if f.statusActive() && string(u.Status) != status {
			continue
		}
		if term != "" && !matches(u, term) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// matches expects term to be lower-cased already.
func matches(u model.User, term string) bool {
	fields := [...]string{
		u.FullName,
		u.Email,
		string(u.Role),
		string(u.Status),
		u.Gender(),
		u.PhoneNo.String(),
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// partnerCandidates is every user except the subject whose name contains
// term, case-insensitively.
func partnerCandidates(users []model.User, subjectID, term string) []model.User {
	term = strings.ToLower(term)
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.ID == subjectID {
			continue
		}
		if !strings.Contains(strings.ToLower(u.FullName), term) {
			continue
		}
		out = append(out, u)
	}
	return out
}
