package executor

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stake-plus/treasury-gov/src/api/data"
	"github.com/stake-plus/treasury-gov/src/api/governance"
	"github.com/stake-plus/treasury-gov/src/api/types"
	"gorm.io/gorm"
)

// Default performs the concrete effect of a passed proposal: treasury
// debits for transfer_funds, settings writes for update_parameter, nothing
// for generic. Failures are reported to the engine, which records them;
// nothing here touches tallies or vote records.
type Default struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Default { return &Default{db: db} }

func (e *Default) Execute(p *types.Proposal) error {
	switch p.Kind {
	case types.KindTransferFunds:
		var tp governance.TransferPayload
		if err := json.Unmarshal([]byte(p.Payload), &tp); err != nil {
			return fmt.Errorf("decode transfer payload: %w", err)
		}
		return e.transfer(p.ID, tp)
	case types.KindUpdateParameter:
		var pp governance.ParameterPayload
		if err := json.Unmarshal([]byte(p.Payload), &pp); err != nil {
			return fmt.Errorf("decode parameter payload: %w", err)
		}
		return e.updateParameter(pp)
	case types.KindGeneric:
		return nil
	default:
		return fmt.Errorf("unknown proposal kind %q", p.Kind)
	}
}

// transfer debits the treasury and appends a ledger entry in one
// transaction. Insufficient funds fail the execution; the proposal records
// the failure and is never retried.
func (e *Default) transfer(proposalID uint64, tp governance.TransferPayload) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var bal types.Setting
		if err := tx.First(&bal, "name = ?", data.SettingTreasuryBalance).Error; err != nil {
			return fmt.Errorf("load treasury balance: %w", err)
		}
		funds, err := strconv.ParseInt(bal.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("parse treasury balance: %w", err)
		}
		if funds < tp.Amount {
			return fmt.Errorf("insufficient treasury funds: have %d, need %d", funds, tp.Amount)
		}
		if err := tx.Model(&types.Setting{}).
			Where("name = ?", data.SettingTreasuryBalance).
			Update("value", strconv.FormatInt(funds-tp.Amount, 10)).Error; err != nil {
			return fmt.Errorf("debit treasury: %w", err)
		}
		entry := types.TreasuryEntry{
			ProposalID: proposalID,
			Recipient:  tp.Recipient,
			Amount:     tp.Amount,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}
		return nil
	})
}

// updateParameter writes the setting and refreshes the in-process cache so
// the change applies to proposals created from now on. In-flight proposals
// keep their creation-time snapshot.
func (e *Default) updateParameter(pp governance.ParameterPayload) error {
	setting := types.Setting{Name: pp.Name, Value: pp.Value}
	if err := e.db.Save(&setting).Error; err != nil {
		return fmt.Errorf("write setting %s: %w", pp.Name, err)
	}
	return data.LoadSettings(e.db)
}
