package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/stake-plus/treasury-gov/src/api/types"
)

// Memory is an in-memory Store used by engine tests. Production always runs
// on the MySQL store; nothing governance-related may live only in memory.
type Memory struct {
	mu        sync.RWMutex
	voters    map[string]types.Voter
	proposals map[uint64]types.Proposal
	votes     map[string]types.VoteRecord
	nextID    uint64
}

func NewMemory() *Memory {
	return &Memory{
		voters:    make(map[string]types.Voter),
		proposals: make(map[uint64]types.Proposal),
		votes:     make(map[string]types.VoteRecord),
		nextID:    1,
	}
}

func voteKey(id uint64, voter string) string {
	return fmt.Sprintf("%d/%s", id, voter)
}

func (m *Memory) GetVoter(addr string) (*types.Voter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.voters[addr]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *Memory) SaveVoter(v *types.Voter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voters[v.Address] = *v
	return nil
}

func (m *Memory) SumActiveWeight() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, v := range m.voters {
		if v.Active {
			total += v.Weight
		}
	}
	return total, nil
}

func (m *Memory) CreateProposal(p *types.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	m.proposals[p.ID] = *p
	return nil
}

func (m *Memory) GetProposal(id uint64) (*types.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.proposals[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) UpdateProposal(p *types.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.proposals[p.ID]; !ok {
		return fmt.Errorf("proposal %d does not exist", p.ID)
	}
	m.proposals[p.ID] = *p
	return nil
}

func (m *Memory) ListByStatus(status string) ([]types.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.Proposal
	for id := uint64(1); id < m.nextID; id++ {
		if p, ok := m.proposals[id]; ok && p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) ListExpiredActive(now time.Time) ([]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint64
	for id := uint64(1); id < m.nextID; id++ {
		p, ok := m.proposals[id]
		if ok && p.Status == types.StatusActive && !p.Finalized && !now.Before(p.VotingDeadline) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *Memory) Stats() (types.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var st types.Stats
	for _, p := range m.proposals {
		st.Total++
		switch p.Status {
		case types.StatusActive:
			st.Active++
		case types.StatusExecuted:
			st.Executed++
		}
	}
	return st, nil
}

func (m *Memory) GetVote(proposalID uint64, voter string) (*types.VoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.votes[voteKey(proposalID, voter)]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *Memory) AddVote(p *types.Proposal, vote *types.VoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := voteKey(vote.ProposalID, vote.Voter)
	if _, ok := m.votes[key]; ok {
		return fmt.Errorf("duplicate vote %s", key)
	}
	if _, ok := m.proposals[p.ID]; !ok {
		return fmt.Errorf("proposal %d does not exist", p.ID)
	}
	m.votes[key] = *vote
	m.proposals[p.ID] = *p
	return nil
}
