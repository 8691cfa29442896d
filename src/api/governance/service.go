package governance

import (
	"context"
	"fmt"

	"github.com/stake-plus/treasury-gov/src/api/types"
	"go.uber.org/zap"
)

// Service drives the proposal lifecycle: creation, vote tallying, lazy
// finalization and delayed execution. All mutating operations on a proposal
// run under a per-proposal lock; operations on different proposals do not
// contend.
type Service struct {
	store    Store
	clock    Clock
	executor ActionExecutor
	params   func() Params
	events   Publisher
	log      *zap.Logger
	locks    *proposalLocks
}

// NewService wires the engine. events may be nil; params is read once per
// proposal creation and snapshotted, never re-read for existing proposals.
func NewService(store Store, clock Clock, executor ActionExecutor, params func() Params, events Publisher, log *zap.Logger) *Service {
	return &Service{
		store:    store,
		clock:    clock,
		executor: executor,
		params:   params,
		events:   events,
		log:      log,
		locks:    newProposalLocks(),
	}
}

// CreateProposal validates the proposer and payload, snapshots the current
// governance configuration and eligible weight, and persists the proposal
// in active state. Returns the new proposal ID.
func (s *Service) CreateProposal(ctx context.Context, proposer, kind, title, description, payload string) (uint64, error) {
	voter, err := s.store.GetVoter(proposer)
	if err != nil {
		return 0, fmt.Errorf("load voter: %w", err)
	}
	if voter == nil || !voter.Active {
		return 0, ErrNotRegistered
	}

	title = sanitizeText(title)
	description = sanitizeText(description)
	if title == "" {
		return 0, ErrInvalidPayload
	}
	if err := validatePayload(kind, payload); err != nil {
		return 0, err
	}

	eligible, err := s.store.SumActiveWeight()
	if err != nil {
		return 0, fmt.Errorf("sum eligible weight: %w", err)
	}

	cfg := s.params()
	now := s.clock.Now()
	deadline := now.Add(cfg.VotingPeriod)

	p := &types.Proposal{
		Proposer:            proposer,
		Kind:                kind,
		Title:               title,
		Description:         description,
		Payload:             payload,
		PayloadHash:         payloadDigest(kind, payload),
		CreatedAt:           now,
		VotingDeadline:      deadline,
		ExecutionEligibleAt: deadline.Add(cfg.ExecutionDelay),
		Status:              types.StatusActive,
		EligibleTotal:       eligible,
		QuorumBps:           cfg.QuorumBps,
		ApprovalBps:         cfg.ApprovalBps,
		VotingPeriodSecs:    int64(cfg.VotingPeriod.Seconds()),
		ExecutionDelaySecs:  int64(cfg.ExecutionDelay.Seconds()),
	}
	if err := s.store.CreateProposal(p); err != nil {
		return 0, fmt.Errorf("save proposal: %w", err)
	}

	s.publish(ctx, "proposal.created", map[string]interface{}{
		"id":       p.ID,
		"proposer": proposer,
		"kind":     kind,
		"title":    title,
	})
	s.log.Info("proposal created",
		zap.Uint64("id", p.ID), zap.String("proposer", proposer), zap.String("kind", kind))
	return p.ID, nil
}

// CastVote records one weighted vote. The vote record and the tally bump
// are persisted as a single atomic unit. A vote that arrives after the
// deadline finalizes the proposal instead and is rejected.
func (s *Service) CastVote(ctx context.Context, id uint64, voterAddr string, choice int16) error {
	if choice != types.ChoiceFor && choice != types.ChoiceAgainst && choice != types.ChoiceAbstain {
		return ErrInvalidPayload
	}

	mu := s.locks.lock(id)
	defer mu.Unlock()

	p, err := s.store.GetProposal(id)
	if err != nil {
		return fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return ErrNotFound
	}

	now := s.clock.Now()
	if p.Status == types.StatusActive && !now.Before(p.VotingDeadline) {
		if err := s.finalizeLocked(ctx, p); err != nil {
			return err
		}
		return ErrProposalNotActive
	}
	if p.Status != types.StatusActive {
		return ErrProposalNotActive
	}

	voter, err := s.store.GetVoter(voterAddr)
	if err != nil {
		return fmt.Errorf("load voter: %w", err)
	}
	if voter == nil || !voter.Active {
		return ErrNotRegistered
	}

	existing, err := s.store.GetVote(id, voterAddr)
	if err != nil {
		return fmt.Errorf("load vote: %w", err)
	}
	if existing != nil {
		return ErrAlreadyVoted
	}

	// Weight is captured now; later registry changes never rewrite history.
	switch choice {
	case types.ChoiceFor:
		p.ForWeight += voter.Weight
	case types.ChoiceAgainst:
		p.AgainstWeight += voter.Weight
	case types.ChoiceAbstain:
		p.AbstainWeight += voter.Weight
	}
	vote := &types.VoteRecord{
		ProposalID: id,
		Voter:      voterAddr,
		Choice:     choice,
		Weight:     voter.Weight,
		CastAt:     now,
	}
	if err := s.store.AddVote(p, vote); err != nil {
		return fmt.Errorf("record vote: %w", err)
	}
	return nil
}

// Finalize computes and persists the verdict of a closed voting window.
// Idempotent: a finalized proposal returns its stored verdict unchanged.
func (s *Service) Finalize(ctx context.Context, id uint64) (string, error) {
	mu := s.locks.lock(id)
	defer mu.Unlock()

	p, err := s.store.GetProposal(id)
	if err != nil {
		return "", fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return "", ErrNotFound
	}
	if p.Finalized || p.Status != types.StatusActive {
		return p.Status, nil
	}
	if s.clock.Now().Before(p.VotingDeadline) {
		return "", ErrTooEarly
	}
	if err := s.finalizeLocked(ctx, p); err != nil {
		return "", err
	}
	return p.Status, nil
}

// finalizeLocked persists the verdict. Caller holds the proposal lock and
// has already checked the deadline.
func (s *Service) finalizeLocked(ctx context.Context, p *types.Proposal) error {
	p.Status = verdict(p)
	p.Finalized = true
	if err := s.store.UpdateProposal(p); err != nil {
		return fmt.Errorf("persist verdict: %w", err)
	}
	s.publish(ctx, "proposal.finalized", map[string]interface{}{
		"id":     p.ID,
		"status": p.Status,
	})
	s.log.Info("proposal finalized", zap.Uint64("id", p.ID), zap.String("status", p.Status))
	return nil
}

// Execute performs the proposal's action exactly once after the execution
// delay. The executed flag is persisted before the action runs, so a
// reentrant or concurrent call can never trigger a second attempt. Action
// failure is terminal: it is recorded on the proposal and governance state
// is never rolled back.
func (s *Service) Execute(ctx context.Context, id uint64) error {
	mu := s.locks.lock(id)
	defer mu.Unlock()

	p, err := s.store.GetProposal(id)
	if err != nil {
		return fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return ErrNotFound
	}

	now := s.clock.Now()
	if p.Status == types.StatusActive && !now.Before(p.VotingDeadline) {
		if err := s.finalizeLocked(ctx, p); err != nil {
			return err
		}
	}
	if p.Executed {
		return ErrAlreadyExecuted
	}
	if p.Status != types.StatusPassed {
		return ErrNotPassed
	}
	if now.Before(p.ExecutionEligibleAt) {
		return ErrTooEarly
	}
	if payloadDigest(p.Kind, p.Payload) != p.PayloadHash {
		// Storage corruption, not a routine failure. Refuse to act.
		s.log.Error("payload digest mismatch", zap.Uint64("id", p.ID))
		return fmt.Errorf("proposal %d: payload digest mismatch", p.ID)
	}

	p.Executed = true
	if err := s.store.UpdateProposal(p); err != nil {
		return fmt.Errorf("mark executed: %w", err)
	}

	execErr := s.executor.Execute(p)
	if execErr != nil {
		p.Status = types.StatusExecutionFailed
		p.FailureReason = truncate(execErr.Error(), 255)
	} else {
		p.Status = types.StatusExecuted
	}
	if err := s.store.UpdateProposal(p); err != nil {
		return fmt.Errorf("persist execution outcome: %w", err)
	}

	s.publish(ctx, "proposal.executed", map[string]interface{}{
		"id":     p.ID,
		"status": p.Status,
	})
	if execErr != nil {
		s.log.Warn("proposal execution failed",
			zap.Uint64("id", p.ID), zap.String("reason", p.FailureReason))
		return &ExecutionError{Reason: execErr.Error()}
	}
	s.log.Info("proposal executed", zap.Uint64("id", p.ID))
	return nil
}

// GetProposal returns the proposal with its lazily derived status. Pure
// reads never write; the derived verdict is persisted by the next mutating
// entry point or the finalization sweep.
func (s *Service) GetProposal(id uint64) (*types.Proposal, error) {
	p, err := s.store.GetProposal(id)
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	p.Status = DeriveStatus(p, s.clock.Now())
	return p, nil
}

// GetTally returns the weighted vote totals for a proposal.
func (s *Service) GetTally(id uint64) (types.Tally, error) {
	p, err := s.GetProposal(id)
	if err != nil {
		return types.Tally{}, err
	}
	return types.Tally{For: p.ForWeight, Against: p.AgainstWeight, Abstain: p.AbstainWeight}, nil
}

// GetVote returns a voter's recorded vote on a proposal.
func (s *Service) GetVote(id uint64, voter string) (*types.VoteRecord, error) {
	p, err := s.store.GetProposal(id)
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	v, err := s.store.GetVote(id, voter)
	if err != nil {
		return nil, fmt.Errorf("load vote: %w", err)
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}

// ListActive returns proposals whose voting window is still open right now.
func (s *Service) ListActive() ([]types.Proposal, error) {
	stored, err := s.store.ListByStatus(types.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	now := s.clock.Now()
	out := make([]types.Proposal, 0, len(stored))
	for _, p := range stored {
		if DeriveStatus(&p, now) == types.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// Stats returns the proposal counters.
func (s *Service) Stats() (types.Stats, error) {
	return s.store.Stats()
}

func (s *Service) publish(ctx context.Context, event string, fields map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event, fields); err != nil {
		s.log.Warn("publish event", zap.String("event", event), zap.Error(err))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
