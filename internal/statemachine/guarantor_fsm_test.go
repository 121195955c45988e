package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tewodrosm/sera-api/internal/models"
)

func TestGuarantorFSM_VerifyFromPending(t *testing.T) {
	g := &models.Guarantor{VerificationStatus: models.GuarantorPending}
	machine := NewGuarantorFSM(g)

	err := machine.Verify(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.GuarantorVerified, g.VerificationStatus)
}

func TestGuarantorFSM_RejectFromPending(t *testing.T) {
	g := &models.Guarantor{VerificationStatus: models.GuarantorPending}
	machine := NewGuarantorFSM(g)

	err := machine.Reject(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.GuarantorRejected, g.VerificationStatus)
}

func TestGuarantorFSM_VerifyTwiceFails(t *testing.T) {
	g := &models.Guarantor{VerificationStatus: models.GuarantorVerified}
	machine := NewGuarantorFSM(g)

	err := machine.Verify(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.GuarantorVerified, g.VerificationStatus)
}

func TestGuarantorFSM_RejectAfterVerifyFails(t *testing.T) {
	g := &models.Guarantor{VerificationStatus: models.GuarantorVerified}
	machine := NewGuarantorFSM(g)

	err := machine.Reject(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.GuarantorVerified, g.VerificationStatus)
}

func TestGuarantorFSM_ResubmitFromDecided(t *testing.T) {
	for _, start := range []string{models.GuarantorVerified, models.GuarantorRejected} {
		g := &models.Guarantor{VerificationStatus: start}
		machine := NewGuarantorFSM(g)

		err := machine.Resubmit(context.Background())
		assert.NoError(t, err, start)
		assert.Equal(t, models.GuarantorPending, g.VerificationStatus)
	}
}

func TestGuarantorFSM_ResubmitFromPendingFails(t *testing.T) {
	g := &models.Guarantor{VerificationStatus: models.GuarantorPending}
	machine := NewGuarantorFSM(g)

	err := machine.Resubmit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.GuarantorPending, g.VerificationStatus)
}
