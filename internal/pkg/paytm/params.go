package paytm

// Request fields sent to the hosted payment page.
const (
	FieldMerchantID   = "MID"
	FieldWebsite      = "WEBSITE"
	FieldIndustryType = "INDUSTRY_TYPE_ID"
	FieldChannelID    = "CHANNEL_ID"
	FieldOrderID      = "ORDER_ID"
	FieldCustomerID   = "CUST_ID"
	FieldTxnAmount    = "TXN_AMOUNT"
	FieldCallbackURL  = "CALLBACK_URL"
	FieldChecksum     = "CHECKSUMHASH"
)

// Response fields posted back by the gateway.
const (
	ResponseOrderID         = "ORDERID"
	ResponseOrderIDInternal = "orderId"
	ResponseStatus          = "STATUS"
	ResponseTxnID           = "TXNID"
	ResponseTxnAmount       = "TXNAMOUNT"
	ResponseMessage         = "RESPMSG"
	ResponsePaymentMode     = "PAYMENTMODE"
	ResponseTxnDate         = "TXNDATE"
)

// Param is one hidden form field of the redirect form.
type Param struct {
	Name  string
	Value string
}

// Params keeps the gateway parameters in submission order.
type Params []Param

// InitiationParams assembles the unsigned parameter set for a new order.
func InitiationParams(cfg *Config, orderID, customerID, amount string) Params {
	return Params{
		{Name: FieldMerchantID, Value: cfg.MerchantID},
		{Name: FieldWebsite, Value: cfg.Website},
		{Name: FieldIndustryType, Value: cfg.IndustryType},
		{Name: FieldChannelID, Value: cfg.ChannelID},
		{Name: FieldOrderID, Value: orderID},
		{Name: FieldCustomerID, Value: customerID},
		{Name: FieldTxnAmount, Value: amount},
		{Name: FieldCallbackURL, Value: cfg.CallbackURL},
	}
}

// Map returns the parameters as a lookup map for signing.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, param := range p {
		m[param.Name] = param.Value
	}
	return m
}

// Get returns the value of the named parameter.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Sign appends the checksum computed over the current parameters.
func (p Params) Sign(signer Signer, key string) (Params, error) {
	checksum, err := signer.Sign(p.Map(), key)
	if err != nil {
		return nil, err
	}
	signed := make(Params, 0, len(p)+1)
	signed = append(signed, p...)
	return append(signed, Param{Name: FieldChecksum, Value: checksum}), nil
}

// ResolveOrderID accepts both the gateway's and the internal casing.
func ResolveOrderID(fields map[string]string) string {
	if v := fields[ResponseOrderID]; v != "" {
		return v
	}
	return fields[ResponseOrderIDInternal]
}
