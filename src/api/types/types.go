package types

import "time"

// Proposal status values. Creation activates a proposal immediately; the
// verdict is derived lazily once the voting deadline has passed.
const (
	StatusActive          = "active"
	StatusPassed          = "passed"
	StatusRejected        = "rejected"
	StatusExecuted        = "executed"
	StatusExecutionFailed = "execution_failed"
)

// Proposal kinds. The kind fixes how the payload is decoded at execution.
const (
	KindTransferFunds   = "transfer_funds"
	KindUpdateParameter = "update_parameter"
	KindGeneric         = "generic"
)

// Vote choices.
const (
	ChoiceAgainst int16 = 0
	ChoiceFor     int16 = 1
	ChoiceAbstain int16 = 2
)

// Registered voters
type Voter struct {
	Address      string `gorm:"primaryKey;size:128"`
	Weight       int64  `gorm:"not null;default:1"`
	Active       bool   `gorm:"default:true"`
	IsAdmin      bool   `gorm:"default:false"`
	RegisteredAt time.Time
}

// Governance proposals
type Proposal struct {
	ID          uint64 `gorm:"primaryKey"`
	Proposer    string `gorm:"size:128;not null"`
	Kind        string `gorm:"size:32;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Payload     string `gorm:"type:text"`
	PayloadHash string `gorm:"size:64"`

	CreatedAt           time.Time
	VotingDeadline      time.Time `gorm:"index"`
	ExecutionEligibleAt time.Time

	Status        string `gorm:"size:32;index;default:active"`
	ForWeight     int64  `gorm:"default:0"`
	AgainstWeight int64  `gorm:"default:0"`
	AbstainWeight int64  `gorm:"default:0"`

	// Snapshots taken at creation; configuration changes never touch
	// in-flight proposals.
	EligibleTotal      int64  `gorm:"not null"`
	QuorumBps          uint32 `gorm:"not null"`
	ApprovalBps        uint32 `gorm:"not null"`
	VotingPeriodSecs   int64  `gorm:"not null"`
	ExecutionDelaySecs int64  `gorm:"not null"`

	Finalized     bool   `gorm:"default:false"`
	Executed      bool   `gorm:"default:false"`
	FailureReason string `gorm:"size:255"`

	Votes []VoteRecord `gorm:"foreignKey:ProposalID"`
}

// One vote per voter per proposal; append-only audit trail.
type VoteRecord struct {
	ProposalID uint64 `gorm:"primaryKey"`
	Voter      string `gorm:"primaryKey;size:128"`
	Choice     int16  `gorm:"not null"`
	Weight     int64  `gorm:"not null"`
	CastAt     time.Time
}

// Governance configuration and treasury balance, name/value rows.
type Setting struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:255;not null"`
}

// Ledger of executed treasury transfers.
type TreasuryEntry struct {
	ID         uint64 `gorm:"primaryKey"`
	ProposalID uint64 `gorm:"index;not null"`
	Recipient  string `gorm:"size:128;not null"`
	Amount     int64  `gorm:"not null"`
	CreatedAt  time.Time
}

// Tally is the weighted vote summary exposed on the query surface.
type Tally struct {
	For     int64 `json:"for"`
	Against int64 `json:"against"`
	Abstain int64 `json:"abstain"`
}

// Stats mirrors the contract-level counters: total proposals ever created,
// currently active, and executed.
type Stats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Executed int64 `json:"executed"`
}
