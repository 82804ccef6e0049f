// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by AdminActionEvent.
const (
	ActionRoleChanged    = "role_changed"
	ActionStatusChanged  = "status_changed"
	ActionMarriageLinked = "marriage_linked"
)

// AdminActionEvent is published after the remote API accepted a change an
// admin made from the console. It carries enough for an audit trail
// without calling the API again.
type AdminActionEvent struct {
	Action     string `json:"action"`
	ActorID    string `json:"actor_id"`
	ActorEmail string `json:"actor_email,omitempty"`
	TargetID   string `json:"target_id"`
	Role       string `json:"role,omitempty"`
	Status     string `json:"status,omitempty"`
	PartnerID  string `json:"partner_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
