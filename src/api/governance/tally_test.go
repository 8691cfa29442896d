package governance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stake-plus/treasury-gov/src/api/types"
)

func proposal(eligible, forW, againstW, abstainW int64, quorum, approval uint32) *types.Proposal {
	return &types.Proposal{
		Status:        types.StatusActive,
		EligibleTotal: eligible,
		ForWeight:     forW,
		AgainstWeight: againstW,
		AbstainWeight: abstainW,
		QuorumBps:     quorum,
		ApprovalBps:   approval,
	}
}

func TestVerdict(t *testing.T) {
	cases := []struct {
		name string
		p    *types.Proposal
		want string
	}{
		{"clear pass", proposal(10, 4, 1, 0, 5000, 6600), types.StatusPassed},
		{"approval short", proposal(10, 3, 3, 0, 5000, 6600), types.StatusRejected},
		{"quorum short", proposal(10, 4, 0, 0, 5000, 6600), types.StatusRejected},
		{"abstain fills quorum", proposal(10, 4, 0, 2, 5000, 6600), types.StatusPassed},
		{"abstain only", proposal(10, 0, 0, 10, 5000, 6600), types.StatusRejected},
		{"no votes", proposal(10, 0, 0, 0, 0, 0), types.StatusRejected},
		{"no eligible weight", proposal(0, 0, 0, 0, 0, 0), types.StatusRejected},
		{"exact approval boundary", proposal(10, 2, 1, 0, 1, 6600), types.StatusPassed},
		{"just below approval", proposal(10, 65, 35, 0, 1, 6600), types.StatusRejected},
		{"full quorum full approval", proposal(7, 7, 0, 0, 10000, 10000), types.StatusPassed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, verdict(tc.p))
		})
	}
}

// Required participation rounds up: 50% of 7 eligible weight is 4, not 3.
func TestQuorumCeilRounding(t *testing.T) {
	assert.False(t, quorumMet(proposal(7, 3, 0, 0, 5000, 0)))
	assert.True(t, quorumMet(proposal(7, 4, 0, 0, 5000, 0)))

	// 1 bps of a tiny electorate still requires at least one unit of weight.
	assert.False(t, quorumMet(proposal(5, 0, 0, 0, 1, 0)))
	assert.True(t, quorumMet(proposal(5, 1, 0, 0, 1, 0)))
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := proposal(10, 4, 1, 0, 5000, 6600)
	p.VotingDeadline = now.Add(time.Minute)
	assert.Equal(t, types.StatusActive, DeriveStatus(p, now))

	p.VotingDeadline = now
	assert.Equal(t, types.StatusPassed, DeriveStatus(p, now))

	// A stored verdict is never recomputed.
	p.Finalized = true
	p.Status = types.StatusRejected
	assert.Equal(t, types.StatusRejected, DeriveStatus(p, now))

	executed := proposal(10, 4, 1, 0, 5000, 6600)
	executed.Status = types.StatusExecuted
	executed.VotingDeadline = now.Add(-time.Hour)
	assert.Equal(t, types.StatusExecuted, DeriveStatus(executed, now))
}
