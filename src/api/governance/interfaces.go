package governance

import (
	"context"
	"time"

	"github.com/stake-plus/treasury-gov/src/api/types"
)

// Clock is the external time oracle. Implementations must be monotonic
// within a single operation; the engine only ever compares instants, it
// never waits.
type Clock interface {
	Now() time.Time
}

// Store persists governance entities. Lookups return (nil, nil) when the
// entity does not exist; the engine maps that to its error taxonomy.
type Store interface {
	// Voters
	GetVoter(addr string) (*types.Voter, error)
	SaveVoter(v *types.Voter) error
	SumActiveWeight() (int64, error)

	// Proposals
	CreateProposal(p *types.Proposal) error
	GetProposal(id uint64) (*types.Proposal, error)
	UpdateProposal(p *types.Proposal) error
	ListByStatus(status string) ([]types.Proposal, error)
	ListExpiredActive(now time.Time) ([]uint64, error)
	Stats() (types.Stats, error)

	// Votes. AddVote persists the vote record and the proposal's updated
	// tally as one atomic unit; if either write fails, neither happens.
	GetVote(proposalID uint64, voter string) (*types.VoteRecord, error)
	AddVote(p *types.Proposal, vote *types.VoteRecord) error
}

// ActionExecutor performs the concrete effect of a passed proposal. The
// engine interprets nothing beyond the returned error.
type ActionExecutor interface {
	Execute(p *types.Proposal) error
}

// Publisher emits lifecycle events (created, finalized, executed) to
// whatever transports care; failures are logged, never propagated.
type Publisher interface {
	Publish(ctx context.Context, event string, fields map[string]interface{}) error
}

// Params is the process-wide governance configuration read at proposal
// creation and snapshotted into the proposal.
type Params struct {
	VotingPeriod   time.Duration
	ExecutionDelay time.Duration
	QuorumBps      uint32
	ApprovalBps    uint32
}
