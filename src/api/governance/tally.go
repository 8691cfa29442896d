package governance

import (
	"time"

	"github.com/stake-plus/treasury-gov/src/api/types"
)

// Threshold values are basis points (1/100 of a percent) so the verdict is
// pure integer arithmetic and replayable.
const bpsDenom = 10000

// quorumMet reports whether participating weight reaches the proposal's
// snapshotted quorum threshold. Required weight rounds up, matching the
// ceil-division the thresholds were written against.
func quorumMet(p *types.Proposal) bool {
	if p.EligibleTotal <= 0 {
		return false
	}
	participating := p.ForWeight + p.AgainstWeight + p.AbstainWeight
	required := (int64(p.QuorumBps)*p.EligibleTotal + bpsDenom - 1) / bpsDenom
	return participating >= required
}

// approvalMet reports whether the for-share of decisive votes reaches the
// approval threshold. Abstentions count toward quorum but are excluded from
// the approval denominator; with no decisive votes at all the proposal
// cannot pass.
func approvalMet(p *types.Proposal) bool {
	decisive := p.ForWeight + p.AgainstWeight
	if decisive <= 0 {
		return false
	}
	return p.ForWeight*bpsDenom >= int64(p.ApprovalBps)*decisive
}

// verdict computes the terminal status of a closed voting window.
func verdict(p *types.Proposal) string {
	if quorumMet(p) && approvalMet(p) {
		return types.StatusPassed
	}
	return types.StatusRejected
}

// DeriveStatus is the pure lazy-transition function: given a proposal and
// the current time it returns the status the proposal ought to have,
// without touching storage. Already-finalized proposals keep their stored
// verdict.
func DeriveStatus(p *types.Proposal, now time.Time) string {
	if p.Finalized || p.Status != types.StatusActive {
		return p.Status
	}
	if now.Before(p.VotingDeadline) {
		return types.StatusActive
	}
	return verdict(p)
}
