package data

import (
	"strconv"
	"sync"
	"time"

	"github.com/stake-plus/treasury-gov/src/api/governance"
	"github.com/stake-plus/treasury-gov/src/api/types"
	"gorm.io/gorm"
)

// Governance configuration lives in the settings table. It is read into an
// in-process cache at startup; proposals snapshot the values they need at
// creation, so a later settings change never reaches in-flight proposals.
const (
	SettingVotingPeriodSecs   = "voting_period_secs"
	SettingQuorumBps          = "quorum_bps"
	SettingApprovalBps        = "approval_bps"
	SettingExecutionDelaySecs = "execution_delay_secs"
	SettingTreasuryBalance    = "treasury_balance"
)

var defaultSettings = map[string]string{
	SettingVotingPeriodSecs:   "604800", // 7 days
	SettingQuorumBps:          "2000",   // 20%
	SettingApprovalBps:        "5000",   // 50%
	SettingExecutionDelaySecs: "86400",  // 1 day
	SettingTreasuryBalance:    "0",
}

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// SeedSettings inserts any missing settings rows with their defaults.
func SeedSettings(db *gorm.DB) error {
	for name, value := range defaultSettings {
		s := types.Setting{Name: name, Value: value}
		if err := db.FirstOrCreate(&s, types.Setting{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// LoadSettings loads all settings from the database into cache
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}
	return nil
}

// GetSetting retrieves a setting value from cache (call LoadSettings first)
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

func settingInt(name string) int64 {
	n, _ := strconv.ParseInt(GetSetting(name), 10, 64)
	return n
}

// GovParams returns the current process-wide governance configuration from
// the cache. The engine calls this once per proposal creation.
func GovParams() governance.Params {
	return governance.Params{
		VotingPeriod:   time.Duration(settingInt(SettingVotingPeriodSecs)) * time.Second,
		ExecutionDelay: time.Duration(settingInt(SettingExecutionDelaySecs)) * time.Second,
		QuorumBps:      uint32(settingInt(SettingQuorumBps)),
		ApprovalBps:    uint32(settingInt(SettingApprovalBps)),
	}
}
