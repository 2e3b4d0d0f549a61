package controllers

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadPay/internal/pkg/payment"
)

// flexString accepts a JSON string or a bare JSON number and keeps its text.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}

func (s *flexString) UnmarshalText(b []byte) error {
	*s = flexString(b)
	return nil
}

type initiatePaymentRequest struct {
	CustomerID flexString `json:"customerId" form:"customerId"`
	Amount     flexString `json:"amount" form:"amount"`
}

func (r initiatePaymentRequest) toServiceRequest() payment.InitiateRequest {
	return payment.InitiateRequest{
		CustomerID: string(r.CustomerID),
		Amount:     string(r.Amount),
	}
}

// parseCallbackFields flattens a gateway callback body into a string map.
// Form posts are the gateway default; JSON and multipart are accepted too.
func parseCallbackFields(c *fiber.Ctx) (map[string]string, error) {
	fields := make(map[string]string)
	if len(c.Body()) == 0 {
		return fields, nil
	}

	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		return decodeJSONFields(c.Body())

	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		for k, values := range form.Value {
			if len(values) > 0 {
				fields[k] = values[0]
			}
		}
		return fields, nil

	default:
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			fields[string(key)] = string(value)
		})
		return fields, nil
	}
}

func decodeJSONFields(body []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		fields[k] = stringifyField(v)
	}
	return fields, nil
}

func stringifyField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
