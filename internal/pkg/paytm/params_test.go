package paytm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSigner struct{}

func (failingSigner) Sign(map[string]string, string) (string, error) {
	return "", errors.New("boom")
}

func (failingSigner) Verify(map[string]string, string, string) (bool, error) {
	return false, errors.New("boom")
}

func testConfig() *Config {
	return &Config{
		MerchantID:     "MID123",
		Website:        "WEBSTAGING",
		IndustryType:   "Retail",
		ChannelID:      "WEB",
		MerchantKey:    "secret",
		CallbackURL:    "https://leads.example.com/callback",
		TransactionURL: "https://gateway.example.com/process",
	}
}

func TestInitiationParamsOrder(t *testing.T) {
	params := InitiationParams(testConfig(), "ORDER1", "C1", "500")

	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		FieldMerchantID, FieldWebsite, FieldIndustryType, FieldChannelID,
		FieldOrderID, FieldCustomerID, FieldTxnAmount, FieldCallbackURL,
	}, names)

	amount, ok := params.Get(FieldTxnAmount)
	require.True(t, ok)
	assert.Equal(t, "500", amount)
}

func TestParamsSign(t *testing.T) {
	cfg := testConfig()
	params := InitiationParams(cfg, "ORDER1", "C1", "500")

	signed, err := params.Sign(NewHMACSigner(), cfg.MerchantKey)
	require.NoError(t, err)
	require.Len(t, signed, len(params)+1)
	assert.Len(t, params, 8, "the unsigned params must not be modified")

	checksum, ok := signed.Get(FieldChecksum)
	require.True(t, ok)
	want, err := NewHMACSigner().Sign(params.Map(), cfg.MerchantKey)
	require.NoError(t, err)
	assert.Equal(t, want, checksum)

	_, err = params.Sign(failingSigner{}, cfg.MerchantKey)
	assert.Error(t, err)
}

func TestResolveOrderID(t *testing.T) {
	assert.Equal(t, "A", ResolveOrderID(map[string]string{"ORDERID": "A", "orderId": "B"}))
	assert.Equal(t, "B", ResolveOrderID(map[string]string{"orderId": "B"}))
	assert.Equal(t, "", ResolveOrderID(map[string]string{"STATUS": "TXN_SUCCESS"}))
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	cfg.MerchantKey = ""
	assert.EqualError(t, cfg.Validate(), "PAYTM_MERCHANT_KEY is not configured")
}
