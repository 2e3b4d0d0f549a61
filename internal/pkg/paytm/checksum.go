package paytm

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// Signer signs and verifies gateway parameter sets. The gateway's own
// checksum library is plugged in behind this interface.
type Signer interface {
	Sign(params map[string]string, key string) (string, error)
	Verify(params map[string]string, key, checksum string) (bool, error)
}

var ErrEmptyMerchantKey = errors.New("merchant key is empty")

// HMACSigner computes HMAC-SHA256 over the canonical parameter string.
// It does not reproduce the gateway's proprietary checksum, so a live
// deployment must plug the gateway SDK's Signer in instead.
type HMACSigner struct{}

func NewHMACSigner() *HMACSigner {
	return &HMACSigner{}
}

func (s *HMACSigner) Sign(params map[string]string, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrEmptyMerchantKey
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(CanonicalString(params)))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the checksum with FieldChecksum excluded from params, so
// callers pass the mapping exactly as received.
func (s *HMACSigner) Verify(params map[string]string, key, checksum string) (bool, error) {
	claimed, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(checksum)))
	if err != nil || len(claimed) == 0 {
		return false, nil
	}
	expectedHex, err := s.Sign(params, key)
	if err != nil {
		return false, err
	}
	expected, err := hex.DecodeString(expectedHex)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, claimed), nil
}

// CanonicalString joins the values of params in ascending key order with "|".
// The checksum field itself never takes part. The format is local to
// HMACSigner and is not the gateway's own canonical form.
func CanonicalString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == FieldChecksum {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		v := params[k]
		if strings.EqualFold(v, "null") {
			v = ""
		}
		values = append(values, v)
	}
	return strings.Join(values, "|")
}
