package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stake-plus/treasury-gov/src/api/types"
)

func TestValidatePayload(t *testing.T) {
	cases := []struct {
		name    string
		kind    string
		payload string
		ok      bool
	}{
		{"transfer ok", types.KindTransferFunds, `{"recipient":"bob","amount":100}`, true},
		{"transfer bad json", types.KindTransferFunds, `{recipient`, false},
		{"transfer no recipient", types.KindTransferFunds, `{"recipient":" ","amount":100}`, false},
		{"transfer zero amount", types.KindTransferFunds, `{"recipient":"bob","amount":0}`, false},
		{"transfer negative amount", types.KindTransferFunds, `{"recipient":"bob","amount":-5}`, false},
		{"param ok", types.KindUpdateParameter, `{"name":"quorum_bps","value":"4000"}`, true},
		{"param unknown name", types.KindUpdateParameter, `{"name":"admin_addr","value":"x"}`, false},
		{"param non-numeric", types.KindUpdateParameter, `{"name":"quorum_bps","value":"half"}`, false},
		{"param negative", types.KindUpdateParameter, `{"name":"voting_period_secs","value":"-1"}`, false},
		{"param bps over 10000", types.KindUpdateParameter, `{"name":"approval_bps","value":"10001"}`, false},
		{"param bps at 10000", types.KindUpdateParameter, `{"name":"approval_bps","value":"10000"}`, true},
		{"generic ignores payload", types.KindGeneric, "", true},
		{"unknown kind", "mint_tokens", "{}", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePayload(tc.kind, tc.payload)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPayload)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", sanitizeText("  hello  "))
	assert.Equal(t, "bold claim", sanitizeText("<b>bold</b> claim"))
	assert.Equal(t, "", sanitizeText("<script>alert(1)</script>"))
}

func TestPayloadDigest(t *testing.T) {
	d1 := payloadDigest(types.KindTransferFunds, `{"recipient":"bob","amount":1}`)
	d2 := payloadDigest(types.KindTransferFunds, `{"recipient":"bob","amount":1}`)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)

	// Kind participates in the digest, not just the payload bytes.
	d3 := payloadDigest(types.KindGeneric, `{"recipient":"bob","amount":1}`)
	assert.NotEqual(t, d1, d3)

	d4 := payloadDigest(types.KindTransferFunds, `{"recipient":"bob","amount":2}`)
	assert.NotEqual(t, d1, d4)
}
