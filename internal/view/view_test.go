package view

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/userlist"
)

func render(t *testing.T, name string, p Page) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, p, nil))
	return buf.String()
}

func TestFormatLabel(t *testing.T) {
	cases := map[string]string{
		"maritalStatus":  "Marital Status",
		"marital_status": "Marital Status",
		"dob":            "Dob",
		"Likes Count":    "Likes Count",
		"height_in_cm":   "Height In Cm",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatLabel(in), in)
	}
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "N/A", OrNA(nil))
	assert.Equal(t, "N/A", OrNA(""))
	assert.Equal(t, "N/A", OrNA(model.FlexString("")))
	assert.Equal(t, "Hindu", OrNA("Hindu"))
	assert.Equal(t, "25", OrNA(float64(25)))
	assert.Equal(t, "5.5", OrNA(5.5))
	assert.Equal(t, "0", OrNA(0))
	assert.Equal(t, "false", OrNA(false))
	assert.Equal(t, "Reading, Music", OrNA([]any{"Reading", "Music"}))
}

func TestPhoneAndWhen(t *testing.T) {
	assert.Equal(t, "+91 98765", Phone("98765"))
	assert.Equal(t, "N/A", Phone(""))
	assert.Equal(t, "N/A", When(nil))
	ts := time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local)
	assert.Equal(t, "02 Jan 2026, 03:04", When(&ts))
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", Page{}, nil))
}

func TestLoginPage(t *testing.T) {
	out := render(t, PageLogin, Page{Title: "Login", Body: Login{Email: "a@b.c", Error: "Please enter email and password"}})
	assert.Contains(t, out, "Please enter email and password")
	assert.Contains(t, out, `value="a@b.c"`)
	assert.NotContains(t, out, "Logout", "no navigation before sign-in")
}

func TestDashboardPage(t *testing.T) {
	cards := DashboardCards(model.UserCount{TotalUsers: 42, ActiveUsers: 30, MarriedUsers: 3})
	require.Len(t, cards, 6)
	assert.Equal(t, "all", cards[0].Status)

	out := render(t, PageDashboard, Page{Title: "Dashboard", Active: "dashboard", SignedIn: true, Body: Dashboard{Cards: cards}})
	assert.Contains(t, out, "Dashboard Overview")
	assert.Contains(t, out, "/users?status=married")
	assert.Contains(t, out, ">42<")
	assert.Contains(t, out, "Logout")

	out = render(t, PageDashboard, Page{SignedIn: true, Body: Dashboard{Error: "Failed to load stats. Please try again."}})
	assert.Contains(t, out, "Failed to load stats. Please try again.")
	assert.NotContains(t, out, "Dashboard Overview")
}

func TestUsersPage(t *testing.T) {
	v := userlist.View{
		Loaded: true,
		Filter: userlist.Filter{Status: "active"},
		Rows: []userlist.Row{
			{User: model.User{ID: "u1", FullName: "Anu", PhoneNo: "98765", Role: model.RoleAdmin, Status: model.StatusActive}, Hint: userlist.HintActive, Locked: true},
			{User: model.User{ID: "u2", Status: model.StatusActive}, Hint: userlist.HintActive},
		},
		UpdatingID: "u1",
	}
	out := render(t, PageUsers, Page{SignedIn: true, Body: Users{View: v, Notice: &userlist.Notice{Text: "Role updated successfully"}}})

	assert.Contains(t, out, "Users (active)")
	assert.Contains(t, out, "Role updated successfully")
	assert.Contains(t, out, "&#43;91 98765", "html/template escapes the plus sign")
	assert.Contains(t, out, "Updating...")
	assert.Contains(t, out, `action="/users/u2/delete"`)
	assert.NotContains(t, out, `action="/users/u1/delete"`, "locked row has no actions")
	assert.Contains(t, out, "#d4edda")
	assert.Contains(t, out, `<option value="admin" selected>`)
	assert.NotContains(t, out, `id="partner"`)

	out = render(t, PageUsers, Page{SignedIn: true, Body: Users{View: userlist.View{Loaded: true, LoadErr: errors.New("Network error. Please check your connection.")}}})
	assert.Contains(t, out, "No users found")
	assert.Contains(t, out, "Network error. Please check your connection.")
	assert.Contains(t, out, "<h1>Users</h1>")
}

func TestUsersPagePartnerDialog(t *testing.T) {
	chosen := model.User{ID: "u3", FullName: "Chitra"}
	flow := userlist.PartnerFlow{
		Phase:      userlist.PartnerChosen,
		Subject:    model.User{ID: "u1", FullName: "Anu"},
		Search:     "chi",
		Chosen:     &chosen,
		Candidates: []model.User{chosen},
	}
	out := render(t, PageUsers, Page{SignedIn: true, Body: Users{View: userlist.View{Loaded: true}, Partner: flow}})
	assert.Contains(t, out, `id="partner"`)
	assert.Contains(t, out, "Select a partner for Anu")
	assert.Contains(t, out, `value="u3"`)
	assert.Contains(t, out, "background:#00BFFF")
	assert.Contains(t, out, `action="/users/partner/confirm"`)
}

func TestProfilePage(t *testing.T) {
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	p := &model.Profile{
		ID:               "u1",
		FullName:         "Anu",
		Role:             model.RoleUser,
		Status:           model.StatusActive,
		Onboarding:       &model.Onboarding{Status: "complete", Step: "4"},
		BasicInformation: map[string]any{"maritalStatus": "never_married", "height": ""},
		FamilyContactAddress: &model.FamilyContactAddress{
			AddressDetails: "Indore",
			ContactDetails: []model.Contact{{Name: "Ravi", Relationship: "brother", PhoneNo: "123"}},
		},
		Likes:     make([]json.RawMessage, 2),
		CreatedAt: &created,
	}
	out := render(t, PageProfile, Page{SignedIn: true, Body: Profile{Profile: p, Back: "/users"}})

	assert.Contains(t, out, "Marital Status")
	assert.Contains(t, out, "never_married")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "complete (Step 4)")
	assert.Contains(t, out, "Ravi (brother)")
	assert.Contains(t, out, "Likes Count")
	assert.Contains(t, out, DefaultAvatar)
	assert.Contains(t, out, PlaceholderImage)
	assert.Contains(t, out, "User Image 5")

	out = render(t, PageProfile, Page{SignedIn: true, Body: Profile{Error: "User not found", Back: "/users"}})
	assert.Contains(t, out, "User not found")
}

func TestProfileImages(t *testing.T) {
	p := Profile{Profile: &model.Profile{Images: &model.Images{ProfileURL: "https://img/a.png", ImageCollectionURLs: []string{"https://img/1.png"}}}}
	assert.Equal(t, "https://img/a.png", p.Avatar())
	assert.Equal(t, []string{"https://img/1.png"}, p.Gallery())
	assert.Len(t, Profile{}.Gallery(), 5)
}
