package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// GuarantorFSM wraps a guarantor with its verification state machine.
// A guarantor starts pending, moves to verified or rejected, and drops
// back to pending when its details are edited (re-submission).
type GuarantorFSM struct {
	guarantor *models.Guarantor
	fsm       *fsm.FSM
}

// NewGuarantorFSM creates a verification state machine for the guarantor
func NewGuarantorFSM(g *models.Guarantor) *GuarantorFSM {
	gfsm := &GuarantorFSM{guarantor: g}

	gfsm.fsm = fsm.NewFSM(
		g.VerificationStatus,
		fsm.Events{
			// pending → verified
			{Name: "verify", Src: []string{models.GuarantorPending}, Dst: models.GuarantorVerified},

			// pending → rejected
			{Name: "reject", Src: []string{models.GuarantorPending}, Dst: models.GuarantorRejected},

			// verified/rejected → pending (details changed, must re-verify)
			{Name: "resubmit", Src: []string{models.GuarantorVerified, models.GuarantorRejected}, Dst: models.GuarantorPending},
		},
		fsm.Callbacks{},
	)

	return gfsm
}

// Verify transitions the guarantor to verified
func (g *GuarantorFSM) Verify(ctx context.Context) error {
	if err := g.fsm.Event(ctx, "verify"); err != nil {
		return fmt.Errorf("guarantor cannot be verified in current state %q: %w", g.guarantor.VerificationStatus, err)
	}
	g.guarantor.VerificationStatus = g.fsm.Current()
	return nil
}

// Reject transitions the guarantor to rejected
func (g *GuarantorFSM) Reject(ctx context.Context) error {
	if err := g.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("guarantor cannot be rejected in current state %q: %w", g.guarantor.VerificationStatus, err)
	}
	g.guarantor.VerificationStatus = g.fsm.Current()
	return nil
}

// Resubmit drops a decided guarantor back to pending
func (g *GuarantorFSM) Resubmit(ctx context.Context) error {
	if err := g.fsm.Event(ctx, "resubmit"); err != nil {
		return fmt.Errorf("guarantor cannot be resubmitted in current state %q: %w", g.guarantor.VerificationStatus, err)
	}
	g.guarantor.VerificationStatus = g.fsm.Current()
	return nil
}

// Current returns the current verification status
func (g *GuarantorFSM) Current() string {
	return g.fsm.Current()
}
