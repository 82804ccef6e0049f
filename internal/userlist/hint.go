package userlist

import "github.com/iliyamo/matrimony-admin/internal/model"

// RowHint is the background hint of a table row.
type RowHint string

const (
	HintActive  RowHint = "row-active"
	HintBlocked RowHint = "row-blocked"
	HintPending RowHint = "row-pending"
	HintMuted   RowHint = "row-muted"
	HintMarried RowHint = "row-married"
	HintNeutral RowHint = "row-neutral"
)

// HintFor maps every status to its hint; anything unknown is neutral.
func HintFor(s model.Status) RowHint {
	switch s {
	case model.StatusActive:
		return HintActive
	case model.StatusBlocked:
		return HintBlocked
	case model.StatusPending:
		return HintPending
	case model.StatusMuted:
		return HintMuted
	case model.StatusMarried:
		return HintMarried
	default:
		return HintNeutral
	}
}

// Color is the background color the hint renders with.
func (h RowHint) Color() string {
	switch h {
	case HintActive:
		return "#d4edda"
	case HintBlocked:
		return "#f8d7da"
	case HintPending:
		return "#fff3cd"
	case HintMuted:
		return "#e2e3e5"
	case HintMarried:
		return "#d1ecf1"
	default:
		return "#ffffff"
	}
}
