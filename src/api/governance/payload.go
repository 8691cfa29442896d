package governance

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stake-plus/treasury-gov/src/api/types"
	"golang.org/x/crypto/blake2b"
)

// TransferPayload is the action descriptor for transfer_funds proposals.
type TransferPayload struct {
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

// ParameterPayload is the action descriptor for update_parameter proposals.
type ParameterPayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Parameters that a governance proposal may change. Anything else is
// rejected at creation, not at execution.
var updatableParams = map[string]bool{
	"voting_period_secs":   true,
	"quorum_bps":           true,
	"approval_bps":         true,
	"execution_delay_secs": true,
}

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips any markup from user-supplied proposal text.
func sanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// validatePayload checks that the payload is well formed for the kind. The
// payload is immutable after creation; votes are cast on a fixed action.
func validatePayload(kind, payload string) error {
	switch kind {
	case types.KindTransferFunds:
		var tp TransferPayload
		if err := json.Unmarshal([]byte(payload), &tp); err != nil {
			return ErrInvalidPayload
		}
		if strings.TrimSpace(tp.Recipient) == "" || tp.Amount <= 0 {
			return ErrInvalidPayload
		}
	case types.KindUpdateParameter:
		var pp ParameterPayload
		if err := json.Unmarshal([]byte(payload), &pp); err != nil {
			return ErrInvalidPayload
		}
		if !updatableParams[pp.Name] {
			return ErrInvalidPayload
		}
		n, err := strconv.ParseInt(pp.Value, 10, 64)
		if err != nil || n < 0 {
			return ErrInvalidPayload
		}
		if strings.HasSuffix(pp.Name, "_bps") && n > 10000 {
			return ErrInvalidPayload
		}
	case types.KindGeneric:
		// generic proposals carry no executable payload
	default:
		return ErrInvalidPayload
	}
	return nil
}

// payloadDigest pins the action at creation time. The digest is re-checked
// before execution; a mismatch means the stored action was tampered with
// and execution must not proceed.
func payloadDigest(kind, payload string) string {
	sum := blake2b.Sum256([]byte(kind + "\x00" + payload))
	return hex.EncodeToString(sum[:])
}
