package paytm

import (
	"errors"
	"strings"

	"github.com/ManuelReschke/LeadPay/internal/pkg/env"
)

const defaultTransactionURL = "https://securegw-stage.paytm.in/order/process"

// Config holds the merchant settings shared by initiation and callback handling.
type Config struct {
	MerchantID     string
	Website        string
	IndustryType   string
	ChannelID      string
	MerchantKey    string
	CallbackURL    string
	TransactionURL string
}

// LoadConfig reads the merchant configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		MerchantID:     strings.TrimSpace(env.GetEnv("PAYTM_MID", "")),
		Website:        strings.TrimSpace(env.GetEnv("PAYTM_WEBSITE", "WEBSTAGING")),
		IndustryType:   strings.TrimSpace(env.GetEnv("PAYTM_INDUSTRY_TYPE", "Retail")),
		ChannelID:      strings.TrimSpace(env.GetEnv("PAYTM_CHANNEL_ID", "WEB")),
		MerchantKey:    strings.TrimSpace(env.GetEnv("PAYTM_MERCHANT_KEY", "")),
		CallbackURL:    strings.TrimSpace(env.GetEnv("PAYTM_CALLBACK_URL", "")),
		TransactionURL: strings.TrimSpace(env.GetEnv("PAYTM_TRANSACTION_URL", defaultTransactionURL)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return errors.New("PAYTM_MID is not configured")
	}
	if c.MerchantKey == "" {
		return errors.New("PAYTM_MERCHANT_KEY is not configured")
	}
	if c.CallbackURL == "" {
		return errors.New("PAYTM_CALLBACK_URL is not configured")
	}
	if c.TransactionURL == "" {
		return errors.New("PAYTM_TRANSACTION_URL is not configured")
	}
	return nil
}
