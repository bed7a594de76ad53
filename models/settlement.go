package models

// ConversionCosts breaks the total conversion cost of a route into its
// components, all in USD.
type ConversionCosts struct {
	Onramp    float64 `json:"onramp"`
	Offramp   float64 `json:"offramp"`
	Company   float64 `json:"company"`
	TotalFees float64 `json:"total_fees"`
}

// ConversionDetails is the structured record of one candidate conversion
// route. Immutable once attached to a settlement. Provider labels are
// display-only decoration and never influence the numeric fields.
type ConversionDetails struct {
	Stablecoin       string          `json:"stablecoin"`
	CustomerAmount   float64         `json:"customer_amount"`
	StablecoinNeeded float64         `json:"stablecoin_needed"`
	USDReceived      float64         `json:"usd_received"`
	OnrampProvider   string          `json:"onramp_provider"`
	OfframpProvider  string          `json:"offramp_provider"`
	OnrampRate       float64         `json:"onramp_rate"`
	OfframpRate      float64         `json:"offramp_rate"`
	CustomerCurrency string          `json:"customer_currency"`
	USDPerStable     float64         `json:"usd_per_stable"`
	CompanyFee       float64         `json:"company_fee"`
	OnrampFee        float64         `json:"onramp_fee"`
	OfframpFee       float64         `json:"offramp_fee"`
	ConversionCosts  ConversionCosts `json:"conversion_costs"`
}

// Settlement is a denormalized snapshot of a paid invoice plus the
// payment-specific fields. Appended to the ledger, never mutated afterward.
type Settlement struct {
	InvoiceID       string `json:"invoice_id"`
	InvoiceNumber   string `json:"invoice_number"`
	Business        string `json:"business"`
	BusinessAddress string `json:"business_address"`
	BusinessEmail   string `json:"business_email"`
	BusinessVAT     string `json:"business_vat"`
	Customer        string `json:"customer"`
	CustomerAddress string `json:"customer_address"`
	CustomerEmail   string `json:"customer_email"`
	CustomerVAT     string `json:"customer_vat"`
	Date            string `json:"date"`
	DueDate         string `json:"due_date"`
	PaymentTerms    string `json:"payment_terms"`

	Subtotal  float64 `json:"subtotal"`
	VATRate   float64 `json:"vat_rate"`
	VATAmount float64 `json:"vat_amount"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`

	CustomerCurrency string  `json:"customer_currency"`
	CustomerAmount   float64 `json:"customer_amount"`
	Stablecoin       string  `json:"stablecoin"`
	AmountStablecoin float64 `json:"amount_stablecoin"`
	USDReceived      float64 `json:"usd_received"`
	CompanyFee       float64 `json:"company_fee"`
	OnrampFee        float64 `json:"onramp_fee"`
	OfframpFee       float64 `json:"offramp_fee"`

	RouteDetails      string             `json:"route_details"`
	ConversionDetails *ConversionDetails `json:"conversion_details,omitempty"`
	Status            string             `json:"status"`
}
