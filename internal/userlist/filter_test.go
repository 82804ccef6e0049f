package userlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/matrimony-admin/internal/model"
)

var (
	anu = model.User{ID: "1", FullName: "Anu", Email: "anu@example.com", Role: model.RoleUser, Status: model.StatusActive,
		BasicInformation: &model.BasicInformation{Gender: "female"}, PhoneNo: "9876500001"}
	bob    = model.User{ID: "2", FullName: "Bob", Email: "bob@example.com", Role: model.RoleAdmin, Status: model.StatusBlocked}
	chitra = model.User{ID: "3", FullName: "Chitra", Role: model.RoleUser, Status: model.StatusPending, PhoneNo: "9123400003"}
	bare   = model.User{ID: "4"}
)

func sample() []model.User { return []model.User{anu, bob, chitra, bare} }

func ids(users []model.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestRecomputeExamples(t *testing.T) {
	c := []model.User{
		{ID: "a", FullName: "Anu", Status: model.StatusActive},
		{ID: "b", FullName: "Bob", Status: model.StatusBlocked},
	}
	assert.Equal(t, []string{"a"}, ids(Recompute(c, Filter{Status: "active"})))
	assert.Equal(t, []string{"b"}, ids(Recompute(c, Filter{Search: "bo"})))
}

func TestRecomputeAllEqualsNoFilter(t *testing.T) {
	assert.Equal(t, Recompute(sample(), Filter{}), Recompute(sample(), Filter{Status: StatusAll}))
	assert.Len(t, Recompute(sample(), Filter{Status: StatusAll}), 4)
}

func TestRecomputeCaseInsensitive(t *testing.T) {
	assert.Equal(t, []string{"1"}, ids(Recompute(sample(), Filter{Search: "ANU"})))
}

func TestRecomputeSearchFields(t *testing.T) {
	cases := map[string][]string{
		"example.com": {"1", "2"}, // email
		"superadmin":  {},         // role, no match
		"admin":       {"2"},      // role
		"pending":     {"3"},      // status
		"FEMALE":      {"1"},      // gender
		"91234":       {"3"},      // phone
		"   ":         {"1", "2", "3", "4"},
	}
	for term, want := range cases {
		assert.Equal(t, want, ids(Recompute(sample(), Filter{Search: term})), "term %q", term)
	}
}

func TestRecomputeComposesWithAnd(t *testing.T) {
	assert.Equal(t, []string{"2"}, ids(Recompute(sample(), Filter{Status: "blocked", Search: "example"})))
	assert.Empty(t, Recompute(sample(), Filter{Status: "active", Search: "bob"}))
}

func TestRecomputeIsPureOrderedSubset(t *testing.T) {
	src := sample()
	filters := []Filter{
		{}, {Status: "active"}, {Status: "married"}, {Search: "a"}, {Search: "o", Status: "blocked"}, {Status: "nonsense"},
	}
	for _, f := range filters {
		first := Recompute(src, f)
		assert.Equal(t, first, Recompute(src, f), "deterministic for %+v", f)
		assert.NotNil(t, first)

		// order-preserving subset: every result appears in src after the previous one
		pos := 0
		for _, u := range first {
			found := false
			for pos < len(src) {
				if src[pos].ID == u.ID {
					found = true
					pos++
					break
				}
				pos++
			}
			assert.True(t, found, "%s out of order or missing for %+v", u.ID, f)
		}
	}
	assert.Equal(t, sample(), src, "source untouched")
}

func TestRecomputeDoesNotAlias(t *testing.T) {
	src := sample()
	out := Recompute(src, Filter{})
	out[0].FullName = "changed"
	assert.Equal(t, "Anu", src[0].FullName)
}

func TestPartnerCandidates(t *testing.T) {
	assert.Equal(t, []string{"2", "3", "4"}, ids(partnerCandidates(sample(), "1", "")))
	assert.Equal(t, []string{"3"}, ids(partnerCandidates(sample(), "1", "CHI")))
	assert.Empty(t, partnerCandidates(sample(), "1", "anu"))
}

func TestHintForIsTotal(t *testing.T) {
	seen := map[RowHint]bool{}
	for _, s := range model.Statuses {
		h := HintFor(s)
		assert.NotEqual(t, HintNeutral, h, "status %s", s)
		assert.False(t, seen[h], "hint %s reused", h)
		seen[h] = true
	}
	assert.Equal(t, HintNeutral, HintFor("deleted"))
	assert.Equal(t, HintNeutral, HintFor(""))
	assert.Equal(t, "#ffffff", HintNeutral.Color())
	assert.Equal(t, "#d4edda", HintActive.Color())
}
