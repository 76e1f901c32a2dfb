package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tedchain/inputparser/types"
)

func TestParseCoins(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", types.Coin},
		{"1.5", 150000000},
		{"0.00000001", 1},
		{"21.12345678", 2112345678},
		{"2000000000", types.MaxMoney},
	}
	for _, tt := range tests {
		got, err := ParseCoins(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseCoins_Errors(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "0.000000001", "2000000000.00000001", "1,5"} {
		_, err := ParseCoins(in)
		assert.Error(t, err, in)
	}
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "0.00000000", FormatCoins(0))
	assert.Equal(t, "1.50000000", FormatCoins(150000000))
	assert.Equal(t, "0.00000001", FormatCoins(1))
	assert.Equal(t, "-2.00000000", FormatCoins(-2*types.Coin))

	for _, units := range []int64{0, 1, 99999999, 12345678901, types.MaxMoney} {
		back, err := ParseCoins(FormatCoins(units))
		require.NoError(t, err)
		assert.Equal(t, units, back)
	}
}

func TestFormatCoins_Extremes(t *testing.T) {
	assert.Equal(t, "-92233720368.54775808", FormatCoins(math.MinInt64))
	assert.Equal(t, "92233720368.54775807", FormatCoins(math.MaxInt64))
}

func TestIsBase58String(t *testing.T) {
	assert.True(t, IsBase58String("PabcXYZ123"))
	assert.False(t, IsBase58String("0OIl"))
	assert.False(t, IsBase58String(""))
}

func TestParseParserConfig(t *testing.T) {
	cfg, err := ParseParserConfig([]byte(`{"network":"test","logLevel":"debug"}`))
	require.NoError(t, err)
	assert.Equal(t, types.NetworkTest, cfg.Network)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, types.DefaultMaxPaymentRequestSize, cfg.MaxPaymentRequestSize)
	assert.Equal(t, types.DefaultStreamChunkSize, cfg.StreamChunkSize)

	_, err = ParseParserConfig([]byte(`{"network":"regtest"}`))
	assert.Error(t, err)

	_, err = ParseParserConfig([]byte(`{"network":"main","logLevel":"loud"}`))
	assert.Error(t, err)

	_, err = ParseParserConfig([]byte(`{`))
	assert.Error(t, err)
}

func TestValidatePaymentIntent(t *testing.T) {
	valid := &types.PaymentIntent{
		Kind:     types.IntentAddress,
		Standard: types.StandardBIP21,
		Network:  types.NetworkMain,
		Address:  "PaddressPlaceholder",
		Outputs:  []types.Output{{Amount: 1, Script: []byte{0x76}}},
	}
	assert.NoError(t, ValidatePaymentIntent(valid))

	noAddress := *valid
	noAddress.Address = ""
	assert.Error(t, ValidatePaymentIntent(&noAddress))

	request := *valid
	request.Kind = types.IntentPaymentRequest
	request.Standard = types.StandardBIP70
	request.Address = ""
	assert.NoError(t, ValidatePaymentIntent(&request))

	noOutputs := *valid
	noOutputs.Outputs = nil
	assert.Error(t, ValidatePaymentIntent(&noOutputs))

	overflow := *valid
	overflow.Outputs = []types.Output{
		{Amount: types.MaxMoney, Script: []byte{1}},
		{Amount: 1, Script: []byte{1}},
	}
	assert.Error(t, ValidatePaymentIntent(&overflow))

	badPayee := request
	badPayee.Payee = &types.Payee{}
	assert.Error(t, ValidatePaymentIntent(&badPayee))

	assert.Error(t, ValidatePaymentIntent(nil))
}

func TestSerializePaymentIntent(t *testing.T) {
	intent := &types.PaymentIntent{
		Kind:     types.IntentAddressAmount,
		Standard: types.StandardBIP21,
		Network:  types.NetworkMain,
		Address:  "PaddressPlaceholder",
		Amount:   5,
		Outputs:  []types.Output{{Amount: 5, Script: []byte{0x76}}},
	}
	b, err := SerializePaymentIntent(intent)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "address_amount",
		"standard": "BIP21",
		"network": "main",
		"address": "PaddressPlaceholder",
		"amount": 5,
		"outputs": [{"amount": 5, "script": "dg=="}]
	}`, string(b))

	_, err = SerializePaymentIntent(&types.PaymentIntent{})
	assert.Error(t, err)
}
