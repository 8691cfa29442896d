package store

import (
	"errors"
	"time"

	"github.com/stake-plus/treasury-gov/src/api/types"
	"gorm.io/gorm"
)

// MySQL is the production Store backed by gorm. Governance entities live in
// the same schema the webserver queries.
type MySQL struct {
	db *gorm.DB
}

func NewMySQL(db *gorm.DB) *MySQL { return &MySQL{db: db} }

func (m *MySQL) GetVoter(addr string) (*types.Voter, error) {
	var v types.Voter
	if err := m.db.First(&v, "address = ?", addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (m *MySQL) SaveVoter(v *types.Voter) error {
	return m.db.Save(v).Error
}

func (m *MySQL) SumActiveWeight() (int64, error) {
	var total int64
	err := m.db.Model(&types.Voter{}).
		Where("active = ?", true).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&total).Error
	return total, err
}

func (m *MySQL) CreateProposal(p *types.Proposal) error {
	return m.db.Create(p).Error
}

func (m *MySQL) GetProposal(id uint64) (*types.Proposal, error) {
	var p types.Proposal
	if err := m.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (m *MySQL) UpdateProposal(p *types.Proposal) error {
	return m.db.Save(p).Error
}

func (m *MySQL) ListByStatus(status string) ([]types.Proposal, error) {
	var out []types.Proposal
	err := m.db.Where("status = ?", status).Order("id").Find(&out).Error
	return out, err
}

func (m *MySQL) ListExpiredActive(now time.Time) ([]uint64, error) {
	var ids []uint64
	err := m.db.Model(&types.Proposal{}).
		Where("status = ? AND finalized = ? AND voting_deadline <= ?", types.StatusActive, false, now).
		Pluck("id", &ids).Error
	return ids, err
}

func (m *MySQL) Stats() (types.Stats, error) {
	var st types.Stats
	if err := m.db.Model(&types.Proposal{}).Count(&st.Total).Error; err != nil {
		return st, err
	}
	if err := m.db.Model(&types.Proposal{}).
		Where("status = ?", types.StatusActive).Count(&st.Active).Error; err != nil {
		return st, err
	}
	err := m.db.Model(&types.Proposal{}).
		Where("status = ?", types.StatusExecuted).Count(&st.Executed).Error
	return st, err
}

func (m *MySQL) GetVote(proposalID uint64, voter string) (*types.VoteRecord, error) {
	var v types.VoteRecord
	err := m.db.First(&v, "proposal_id = ? AND voter = ?", proposalID, voter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// AddVote inserts the vote record and writes the proposal's bumped tally in
// one transaction; a failure of either leaves both untouched.
func (m *MySQL) AddVote(p *types.Proposal, vote *types.VoteRecord) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		return tx.Model(&types.Proposal{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"for_weight":     p.ForWeight,
			"against_weight": p.AgainstWeight,
			"abstain_weight": p.AbstainWeight,
		}).Error
	})
}
