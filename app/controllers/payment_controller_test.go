package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadPay/app/models"
	"github.com/ManuelReschke/LeadPay/internal/pkg/payment"
	"github.com/ManuelReschke/LeadPay/internal/pkg/paytm"
	"github.com/ManuelReschke/LeadPay/views"
)

var hiddenInputRe = regexp.MustCompile(`<input type="hidden" name="([^"]+)" value="([^"]*)">`)

func testGatewayConfig() *paytm.Config {
	return &paytm.Config{
		MerchantID:     "MID123",
		Website:        "WEBSTAGING",
		IndustryType:   "Retail",
		ChannelID:      "WEB",
		MerchantKey:    "merchant-secret",
		CallbackURL:    "https://leads.example.com/callback",
		TransactionURL: "https://gateway.example.com/process",
	}
}

type fakePaymentRepo struct {
	payments []models.Payment
	err      error
}

func (f *fakePaymentRepo) GetByOrderID(orderID string) (*models.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.payments {
		if f.payments[i].OrderID == orderID {
			p := f.payments[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) List(offset, limit int) ([]models.Payment, error) {
	return f.page(f.payments, offset, limit), f.err
}

func (f *fakePaymentRepo) ListByCustomerID(customerID string, offset, limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return f.page(out, offset, limit), f.err
}

func (f *fakePaymentRepo) Count() (int64, error) {
	return int64(len(f.payments)), f.err
}

func (f *fakePaymentRepo) page(in []models.Payment, offset, limit int) []models.Payment {
	if offset >= len(in) {
		return nil
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}

type fakeSnapshotter struct {
	counts map[string]int64
	err    error
}

func (f *fakeSnapshotter) Snapshot(context.Context) (map[string]int64, error) {
	return f.counts, f.err
}

type paymentHarness struct {
	app    *fiber.App
	repo   *payment.MemoryRepository
	signer *paytm.HMACSigner
	cfg    *paytm.Config
}

func newPaymentHarness(t *testing.T) *paymentHarness {
	t.Helper()
	h := &paymentHarness{
		repo:   payment.NewMemoryRepository(),
		signer: paytm.NewHMACSigner(),
		cfg:    testGatewayConfig(),
	}
	svc := payment.NewService(h.repo, h.signer, h.cfg)
	pc := NewPaymentController(svc, &fakePaymentRepo{}, nil)

	h.app = fiber.New(fiber.Config{
		Views:       views.Engine(),
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	h.app.Post("/initiate", pc.HandleInitiate)
	h.app.Post("/callback", pc.HandleCallback)
	return h
}

func (h *paymentHarness) signedCallback(t *testing.T, fields map[string]string) url.Values {
	t.Helper()
	checksum, err := h.signer.Sign(fields, h.cfg.MerchantKey)
	require.NoError(t, err)
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	form.Set(paytm.FieldChecksum, checksum)
	return form
}

func doRequest(t *testing.T, app *fiber.App, method, target, contentType, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestHandleInitiateRendersRedirectForm(t *testing.T) {
	h := newPaymentHarness(t)

	resp, body := doRequest(t, h.app, fiber.MethodPost, "/initiate", fiber.MIMEApplicationJSON,
		`{"customerId":"CUST42","amount":"499.00"}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, body, `name="paytmForm"`)
	assert.Contains(t, body, `method="POST"`)
	assert.Contains(t, body, `action="https://gateway.example.com/process"`)
	assert.Contains(t, body, `document.paytmForm.submit()`)

	matches := hiddenInputRe.FindAllStringSubmatch(body, -1)
	require.Len(t, matches, 9)
	names := make([]string, 0, len(matches))
	fields := make(map[string]string, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
		fields[m[1]] = m[2]
	}
	assert.Equal(t, []string{"MID", "WEBSITE", "INDUSTRY_TYPE_ID", "CHANNEL_ID", "ORDER_ID", "CUST_ID", "TXN_AMOUNT", "CALLBACK_URL", "CHECKSUMHASH"}, names)
	assert.Equal(t, "CUST42", fields["CUST_ID"])
	assert.Equal(t, "499.00", fields["TXN_AMOUNT"])
	assert.Regexp(t, `^ORDER[0-9A-F]{32}$`, fields["ORDER_ID"])

	valid, err := h.signer.Verify(fields, h.cfg.MerchantKey, fields["CHECKSUMHASH"])
	require.NoError(t, err)
	assert.True(t, valid)

	stored := h.repo.Payments()
	require.Len(t, stored, 1)
	assert.Equal(t, fields["ORDER_ID"], stored[0].OrderID)
	assert.Equal(t, "CUST42", stored[0].CustomerID)
	assert.Nil(t, stored[0].PaymentStatus)
	assert.Nil(t, stored[0].TransactionID)
}

func TestHandleInitiateAcceptsFormAndNumericAmount(t *testing.T) {
	t.Run("form", func(t *testing.T) {
		h := newPaymentHarness(t)
		form := url.Values{"customerId": {"C1"}, "amount": {"10"}}
		resp, body := doRequest(t, h.app, fiber.MethodPost, "/initiate", fiber.MIMEApplicationForm, form.Encode())
		require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
		assert.Contains(t, body, `name="TXN_AMOUNT" value="10"`)
	})

	t.Run("json number", func(t *testing.T) {
		h := newPaymentHarness(t)
		resp, body := doRequest(t, h.app, fiber.MethodPost, "/initiate", fiber.MIMEApplicationJSON,
			`{"customerId":"C1","amount":250.5}`)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
		assert.Contains(t, body, `name="TXN_AMOUNT" value="250.5"`)
	})
}

func TestHandleInitiateValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"missing amount", `{"customerId":"C1"}`, payment.MsgInitiateMissingFields},
		{"empty customer", `{"customerId":"","amount":"10"}`, payment.MsgInitiateMissingFields},
		{"negative amount", `{"customerId":"C1","amount":"-5"}`, payment.MsgInitiateInvalidAmount},
		{"not a number", `{"customerId":"C1","amount":"ten"}`, payment.MsgInitiateInvalidAmount},
		{"malformed json", `{"customerId":`, payment.MsgInitiateMissingFields},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newPaymentHarness(t)
			resp, body := doRequest(t, h.app, fiber.MethodPost, "/initiate", fiber.MIMEApplicationJSON, tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			got := decodeBody(t, body)
			assert.Equal(t, false, got["success"])
			assert.Equal(t, tc.message, got["message"])
			assert.Empty(t, h.repo.Payments())
		})
	}
}

func TestHandleInitiateStoreFailure(t *testing.T) {
	h := newPaymentHarness(t)
	h.repo.CreateErr = errors.New("db down")

	resp, body := doRequest(t, h.app, fiber.MethodPost, "/initiate", fiber.MIMEApplicationJSON,
		`{"customerId":"C1","amount":"10"}`)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	got := decodeBody(t, body)
	assert.Equal(t, payment.MsgInitiateFailed, got["message"])
	assert.NotContains(t, got, "error")
}

func TestHandleCallbackUpdatesPaymentAndLead(t *testing.T) {
	h := newPaymentHarness(t)
	h.repo.SeedPayment(&models.Payment{OrderID: "ORDER1", CustomerID: "C1", Amount: "100.00"})
	h.repo.SeedLead(&models.Lead{OrderID: "ORDER1"})

	form := h.signedCallback(t, map[string]string{
		"ORDERID":     "ORDER1",
		"STATUS":      "TXN_SUCCESS",
		"TXNID":       "T9",
		"TXNAMOUNT":   "100.00",
		"PAYMENTMODE": "UPI",
		"TXNDATE":     "2024-01-01 10:00:00",
		"RESPMSG":     "Txn Success",
	})
	resp, body := doRequest(t, h.app, fiber.MethodPost, "/callback", fiber.MIMEApplicationForm, form.Encode())

	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	got := decodeBody(t, body)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "Payment status updated successfully. orderId: ORDER1, Status: TXN_SUCCESS", got["message"])

	p := h.repo.Payment("ORDER1")
	require.NotNil(t, p)
	require.NotNil(t, p.PaymentStatus)
	assert.Equal(t, "TXN_SUCCESS", *p.PaymentStatus)
	assert.Equal(t, models.PaymentOutcomeSuccess, *p.PaymentOutcome)
	assert.Equal(t, "T9", *p.TransactionID)
	assert.Equal(t, "UPI", *p.PaymentMode)
	assert.Equal(t, "TXN_SUCCESS", h.repo.Lead("ORDER1").PaymentStatus)
}

func TestHandleCallbackJSONBody(t *testing.T) {
	h := newPaymentHarness(t)
	h.repo.SeedPayment(&models.Payment{OrderID: "ORDER2", CustomerID: "C1", Amount: "5"})

	fields := map[string]string{"orderId": "ORDER2", "STATUS": "TXN_FAILURE", "TXNAMOUNT": "5"}
	checksum, err := h.signer.Sign(fields, h.cfg.MerchantKey)
	require.NoError(t, err)
	body := `{"orderId":"ORDER2","STATUS":"TXN_FAILURE","TXNAMOUNT":5,"CHECKSUMHASH":"` + checksum + `"}`

	resp, raw := doRequest(t, h.app, fiber.MethodPost, "/callback", fiber.MIMEApplicationJSON, body)

	require.Equal(t, fiber.StatusOK, resp.StatusCode, raw)
	p := h.repo.Payment("ORDER2")
	assert.Equal(t, "TXN_FAILURE", *p.PaymentStatus)
	assert.Equal(t, models.PaymentOutcomeFailure, *p.PaymentOutcome)
}

func TestHandleCallbackRejections(t *testing.T) {
	h := newPaymentHarness(t)
	h.repo.SeedPayment(&models.Payment{OrderID: "ORDER1", CustomerID: "C1", Amount: "100.00"})

	tampered := h.signedCallback(t, map[string]string{"ORDERID": "ORDER1", "STATUS": "TXN_FAILURE"})
	tampered.Set("STATUS", "TXN_SUCCESS")

	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"empty body", "", fiber.StatusBadRequest, payment.MsgCallbackEmpty},
		{"bad checksum", tampered.Encode(), fiber.StatusBadRequest, payment.MsgCallbackChecksum},
		{"missing status", h.signedCallback(t, map[string]string{"ORDERID": "ORDER1"}).Encode(), fiber.StatusBadRequest, payment.MsgCallbackInvalid},
		{"unknown order", h.signedCallback(t, map[string]string{"ORDERID": "ORDER404", "STATUS": "TXN_SUCCESS"}).Encode(), fiber.StatusNotFound, payment.MsgPaymentNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doRequest(t, h.app, fiber.MethodPost, "/callback", fiber.MIMEApplicationForm, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			got := decodeBody(t, body)
			assert.Equal(t, false, got["success"])
			assert.Equal(t, tc.message, got["message"])
		})
	}

	assert.Zero(t, h.repo.Mutations())
	assert.Nil(t, h.repo.Payment("ORDER1").PaymentStatus)
}

func TestHandleCallbackUnexpectedFailure(t *testing.T) {
	h := newPaymentHarness(t)
	h.repo.SeedPayment(&models.Payment{OrderID: "ORDER1", CustomerID: "C1", Amount: "1"})
	h.repo.SeedLead(&models.Lead{OrderID: "ORDER1"})
	h.repo.LeadErr = errors.New("lock wait timeout")

	form := h.signedCallback(t, map[string]string{"ORDERID": "ORDER1", "STATUS": "TXN_SUCCESS"})
	resp, body := doRequest(t, h.app, fiber.MethodPost, "/callback", fiber.MIMEApplicationForm, form.Encode())

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	got := decodeBody(t, body)
	assert.Equal(t, payment.MsgCallbackFailed, got["message"])
	assert.Equal(t, "lock wait timeout", got["error"])
	assert.Nil(t, h.repo.Payment("ORDER1").PaymentStatus)
}

func TestHandleGetAndListPayments(t *testing.T) {
	status := "TXN_SUCCESS"
	repo := &fakePaymentRepo{payments: []models.Payment{
		{OrderID: "ORDER1", CustomerID: "C1", Amount: "1", PaymentStatus: &status},
		{OrderID: "ORDER2", CustomerID: "C2", Amount: "2"},
	}}
	pc := NewPaymentController(nil, repo, &fakeSnapshotter{counts: map[string]int64{"success": 3}})
	app := fiber.New()
	app.Get("/payments", pc.HandleListPayments)
	app.Get("/payments/outcomes", pc.HandleOutcomes)
	app.Get("/payments/:orderId", pc.HandleGetPayment)

	resp, body := doRequest(t, app, fiber.MethodGet, "/payments/ORDER1", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decodeBody(t, body)
	assert.Equal(t, "TXN_SUCCESS", got["payment"].(map[string]any)["paymentStatus"])

	resp, _ = doRequest(t, app, fiber.MethodGet, "/payments/ORDER404", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = doRequest(t, app, fiber.MethodGet, "/payments?customerId=C2", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got = decodeBody(t, body)
	assert.Len(t, got["payments"], 1)
	assert.NotContains(t, got, "total")

	resp, body = doRequest(t, app, fiber.MethodGet, "/payments?limit=1&page=2", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got = decodeBody(t, body)
	assert.Len(t, got["payments"], 1)
	assert.Equal(t, float64(2), got["total"])

	resp, body = doRequest(t, app, fiber.MethodGet, "/payments/outcomes", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got = decodeBody(t, body)
	assert.Equal(t, float64(3), got["outcomes"].(map[string]any)["success"])
}

func TestHandleOutcomesUnavailable(t *testing.T) {
	app := fiber.New()
	app.Get("/outcomes", NewPaymentController(nil, nil, nil).HandleOutcomes)

	resp, _ := doRequest(t, app, fiber.MethodGet, "/outcomes", "", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
