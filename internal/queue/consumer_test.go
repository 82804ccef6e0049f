package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	line := FormatLine(AdminActionEvent{
		Action:     ActionMarriageLinked,
		ActorID:    "a1",
		ActorEmail: "root@example.com",
		TargetID:   "u1",
		Status:     "married",
		PartnerID:  "u2",
		OccurredAt: "2026-10-15T10:00:00Z",
	})
	assert.Equal(t, "[2026-10-15T10:00:00Z] marriage_linked | actor=a1 <root@example.com> | target=u1 | status=married | partner=u2\n", line)

	line = FormatLine(AdminActionEvent{Action: ActionRoleChanged, TargetID: "u3", Role: "admin", OccurredAt: "t"})
	assert.Equal(t, "[t] role_changed | actor=- | target=u3 | role=admin\n", line)
}

func TestHandleMessageAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	ev := AdminActionEvent{Action: ActionStatusChanged, ActorID: "a1", TargetID: "u1", Status: "blocked", OccurredAt: "t1"}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, HandleMessage(dir, body))
	require.NoError(t, HandleMessage(dir, body))

	raw, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	assert.Equal(t, FormatLine(ev)+FormatLine(ev), string(raw))
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, HandleMessage(dir, []byte("{nope")))
	assert.Error(t, HandleMessage(dir, []byte(`{"action":"role_changed"}`)))
	_, err := os.Stat(filepath.Join(dir, "audit.log"))
	assert.True(t, os.IsNotExist(err))
}
