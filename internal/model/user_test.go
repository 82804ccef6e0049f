package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDecodesLoosePayload(t *testing.T) {
	var users []User
	raw := `[
		{"_id":"1","fullName":"Anu","phoneNo":9876500001,"basic_information":{"gender":"female"}},
		{"_id":"2","phoneNo":"+91 98765","role":"admin"},
		{"_id":"3","phoneNo":null}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &users))
	require.Len(t, users, 3)

	assert.Equal(t, "9876500001", users[0].PhoneNo.String())
	assert.Equal(t, "female", users[0].Gender())
	assert.Equal(t, "+91 98765", string(users[1].PhoneNo))
	assert.Equal(t, RoleAdmin, users[1].Role)
	assert.Empty(t, users[1].Gender())
	assert.Empty(t, users[2].PhoneNo)
}

func TestFlexStringRejectsObjects(t *testing.T) {
	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
}

func TestParseRoleAndStatus(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrUnknownRole)

	s, err := ParseStatus("MARRIED")
	require.NoError(t, err)
	assert.Equal(t, StatusMarried, s)
	_, err = ParseStatus("deleted")
	assert.ErrorIs(t, err, ErrUnknownStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestSocialCounts(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"1","likes":[1,2],"shortListed":[{"a":1}],"pendingShortlistRequests":[]}`), &p))
	c := p.SocialCounts()
	assert.Equal(t, 2, c["Likes Count"])
	assert.Equal(t, 1, c["Shortlisted Users"])
	assert.Equal(t, 0, c["Pending Shortlist Requests"])
	assert.Equal(t, 0, c["Sent Shortlist Requests"])
}
