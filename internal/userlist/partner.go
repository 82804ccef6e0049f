package userlist

import (
	"context"

	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/queue"
)

// PartnerPhase is the state of the partner selection flow.
type PartnerPhase int

const (
	PartnerClosed PartnerPhase = iota
	PartnerSearching
	PartnerChosen
)

func (p PartnerPhase) String() string {
	switch p {
	case PartnerClosed:
		return "closed"
	case PartnerSearching:
		return "searching"
	case PartnerChosen:
		return "chosen"
	default:
		return "unknown"
	}
}

type partnerState struct {
	phase     PartnerPhase
	subjectID string
	search    string
	chosen    *model.User
}

// PartnerFlow is a snapshot of the selection flow.
type PartnerFlow struct {
	Phase      PartnerPhase
	Subject    model.User
	Search     string
	Chosen     *model.User
	Candidates []model.User
}

// Open reports whether the flow is showing.
func (p PartnerFlow) Open() bool { return p.Phase != PartnerClosed }

// OpenPartnerFlow starts selecting a partner for subjectID, discarding any
// previous search text and selection.
func (e *Engine) OpenPartnerFlow(subjectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.findLocked(subjectID); !ok {
		return ErrUnknownUser
	}
	e.partner = partnerState{phase: PartnerSearching, subjectID: subjectID}
	return nil
}

// SetPartnerSearch narrows the candidate list by name. A held selection
// survives a new search.
func (e *Engine) SetPartnerSearch(term string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.partner.phase == PartnerClosed {
		return ErrPartnerFlowClosed
	}
	e.partner.search = term
	return nil
}

// ChoosePartner holds partnerID as the selection without committing it.
// Only a current candidate can be chosen.
func (e *Engine) ChoosePartner(partnerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.partner.phase == PartnerClosed {
		return ErrPartnerFlowClosed
	}
	for _, u := range partnerCandidates(e.source, e.partner.subjectID, e.partner.search) {
		if u.ID == partnerID {
			e.partner.chosen = &u
			e.partner.phase = PartnerChosen
			return nil
		}
	}
	return ErrUnknownUser
}

// ConfirmPartner sends the married status with the chosen partner's id,
// under the same update lock as any other mutation. On success the flow
// closes and the list reloads; on failure the flow keeps its selection so
// the admin can retry without searching again.
func (e *Engine) ConfirmPartner(ctx context.Context) error {
	e.mu.Lock()
	p := e.partner
	e.mu.Unlock()

	switch {
	case p.phase == PartnerClosed:
		return ErrPartnerFlowClosed
	case p.chosen == nil:
		return ErrNoPartnerChosen
	}

	subjectID, partnerID := p.subjectID, p.chosen.ID
	err := e.mutate(ctx, subjectID, func(ctx context.Context) error {
		return e.dir.UpdateStatus(ctx, subjectID, model.StatusMarried, partnerID)
	}, queue.AdminActionEvent{
		Action:    queue.ActionMarriageLinked,
		TargetID:  subjectID,
		Status:    string(model.StatusMarried),
		PartnerID: partnerID,
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.partner.subjectID == subjectID {
		e.partner = partnerState{}
	}
	e.mu.Unlock()
	return nil
}

// ClosePartnerFlow cancels the flow. Nothing is sent.
func (e *Engine) ClosePartnerFlow() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.partner = partnerState{}
}

// Partner returns the flow snapshot including the current candidates.
func (e *Engine) Partner() PartnerFlow {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.partner
	if p.phase == PartnerClosed {
		return PartnerFlow{Phase: PartnerClosed}
	}
	subject, _ := e.findLocked(p.subjectID)
	flow := PartnerFlow{
		Phase:      p.phase,
		Subject:    subject,
		Search:     p.search,
		Candidates: partnerCandidates(e.source, p.subjectID, p.search),
	}
	if p.chosen != nil {
		chosen := *p.chosen
		flow.Chosen = &chosen
	}
	return flow
}
