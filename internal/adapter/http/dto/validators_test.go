package dto

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestIsNativeAmount(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0.05", true},
		{"1", true},
		{"100.000000000000000001", true},
		{"0.000000000000000001", true},
		{"0.0000000000000000001", false},
		{"0", false},
		{"-1", false},
		{"1e18", false},
		{"+1", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNativeAmount(tt.in))
		})
	}
}

func TestBinding_LoginRequest(t *testing.T) {
	sig := "0x" + strings.Repeat("ab", 65)
	valid := LoginRequest{
		Address:   "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		Timestamp: 1_700_000_000,
		Signature: sig,
	}
	assert.NoError(t, binding.Validator.ValidateStruct(valid))

	badAddr := valid
	badAddr.Address = "0x1234"
	assert.Error(t, binding.Validator.ValidateStruct(badAddr))

	badSig := valid
	badSig.Signature = "0xdead"
	assert.Error(t, binding.Validator.ValidateStruct(badSig))
}

func TestBinding_PrepareRequest(t *testing.T) {
	req := PrepareRequest{Amount: "0.05", Recipient: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"}
	assert.NoError(t, binding.Validator.ValidateStruct(req))

	req.Amount = "zero"
	assert.Error(t, binding.Validator.ValidateStruct(req))
}

func TestBinding_HistoryQuery(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(HistoryQuery{}))
	assert.NoError(t, binding.Validator.ValidateStruct(HistoryQuery{Limit: 10, Status: "failed"}))
	assert.Error(t, binding.Validator.ValidateStruct(HistoryQuery{Status: "reverted"}))
	assert.Error(t, binding.Validator.ValidateStruct(HistoryQuery{Limit: 501}))
}

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RiskRequest{
		Amount:    "  0.5 ",
		Recipient: " 0x71C7656EC7ab88b098defB751B7401B5f6d8976F\n",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "0.5", req.Amount)
	assert.Equal(t, "0x71C7656EC7ab88b098defB751B7401B5f6d8976F", req.Recipient)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := SessionRequest{Action: "<b>swap</b>"}
	SanitizeStruct(&req)
	assert.Equal(t, "&lt;b&gt;swap&lt;/b&gt;", req.Action)
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	token := "  0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48  "
	req := PrepareRequest{Token: &token}
	SanitizeStruct(&req)
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", *req.Token)

	req = PrepareRequest{}
	SanitizeStruct(&req)
	assert.Nil(t, req.Token)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	req := SessionRequest{Action: " transfer "}
	SanitizeStruct(req)
	assert.Equal(t, " transfer ", req.Action)
}
