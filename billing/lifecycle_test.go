package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/crossover-billing/models"
	"github.com/yourusername/crossover-billing/rates"
)

func validParams() InvoiceParams {
	return InvoiceParams{
		Business:        "Crossover Solutions",
		BusinessAddress: "123 Main Street, Rotterdam, Netherlands",
		BusinessEmail:   "info@crossover-solutions.com",
		BusinessVAT:     "NL123456789B01",
		Customer:        "Acme BV",
		CustomerEmail:   "billing@acme.example",
		InvoiceNumber:   "INV0001",
		Date:            "2026-08-28",
		DueDate:         "2026-09-27",
		PaymentTerms:    "30 days",
		LineItems: []models.LineItem{
			{Description: "Consulting", Amount: 60.0},
			{Description: "Support", Amount: 40.0},
		},
		VATRate:  21.0,
		Currency: "USD",
	}
}

func sampleRoute() *rates.Route {
	conversion := models.ConversionDetails{
		Stablecoin:       "USDC",
		CustomerAmount:   122.216080402,
		StablecoinNeeded: 121.608040201,
		USDReceived:      121.00,
		OnrampProvider:   "MoonPay",
		OfframpProvider:  "Circle",
		OnrampRate:       1.005,
		OfframpRate:      0.995,
		CustomerCurrency: "USD",
		USDPerStable:     1.0,
		CompanyFee:       1.21,
		OnrampFee:        0.608040201,
		OfframpFee:       0.608040201,
	}
	return &rates.Route{
		Stablecoin:       "usdc",
		CustomerAmount:   conversion.CustomerAmount,
		StablecoinNeeded: conversion.StablecoinNeeded,
		USDNeeded:        122.216080402,
		CompanyFee:       conversion.CompanyFee,
		OnrampFee:        conversion.OnrampFee,
		OfframpFee:       conversion.OfframpFee,
		RouteDetails:     "USDC: 122.22 USD (onramp fee: 0.61 USD, offramp fee: 0.61 USD, company fee: 1.21 USD)",
		Conversion:       conversion,
	}
}

func TestCreateInvoiceTotals(t *testing.T) {
	invoice, err := CreateInvoice(validParams())
	require.NoError(t, err)

	assert.InDelta(t, 100.0, invoice.Subtotal, 1e-6)
	assert.InDelta(t, 21.0, invoice.VATAmount, 1e-6)
	assert.InDelta(t, 121.0, invoice.Total, 1e-6)
	assert.InDelta(t, invoice.Subtotal+invoice.VATAmount, invoice.Total, 1e-6)
	assert.InDelta(t, invoice.Subtotal*invoice.VATRate/100, invoice.VATAmount, 1e-6)

	assert.Equal(t, models.StatusUnpaid, invoice.Status)
	assert.NotEmpty(t, invoice.ID)
	assert.Empty(t, invoice.RouteDetails)
	assert.Nil(t, invoice.ConversionDetails)
}

func TestCreateInvoiceAssignsUniqueIDs(t *testing.T) {
	a, err := CreateInvoice(validParams())
	require.NoError(t, err)
	b, err := CreateInvoice(validParams())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateInvoiceValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvoiceParams)
	}{
		{
			name:   "no line items",
			mutate: func(p *InvoiceParams) { p.LineItems = nil },
		},
		{
			name: "negative amount",
			mutate: func(p *InvoiceParams) {
				p.LineItems = []models.LineItem{{Description: "Refund", Amount: -5}}
			},
		},
		{
			name:   "negative vat rate",
			mutate: func(p *InvoiceParams) { p.VATRate = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			invoice, err := CreateInvoice(params)
			assert.Nil(t, invoice)
			assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)
		})
	}
}

func TestMarkPaid(t *testing.T) {
	invoice, err := CreateInvoice(validParams())
	require.NoError(t, err)
	route := sampleRoute()

	settlement, err := MarkPaid(invoice, route, "usd")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPaid, invoice.Status)
	assert.Equal(t, route.RouteDetails, invoice.RouteDetails)
	require.NotNil(t, invoice.ConversionDetails)
	assert.Equal(t, "USDC", invoice.ConversionDetails.Stablecoin)

	assert.Equal(t, invoice.ID, settlement.InvoiceID)
	assert.Equal(t, "USD", settlement.CustomerCurrency)
	assert.Equal(t, "USDC", settlement.Stablecoin)
	assert.InDelta(t, invoice.Total, settlement.USDReceived, 1e-9)
	assert.InDelta(t, route.StablecoinNeeded, settlement.AmountStablecoin, 1e-9)
	assert.InDelta(t, route.CustomerAmount, settlement.CustomerAmount, 1e-9)
	assert.Equal(t, models.StatusPaid, settlement.Status)
	require.NotNil(t, settlement.ConversionDetails)
	assert.Equal(t, *invoice.ConversionDetails, *settlement.ConversionDetails)
}

func TestMarkPaidRejectsSecondPayment(t *testing.T) {
	invoice, err := CreateInvoice(validParams())
	require.NoError(t, err)

	_, err = MarkPaid(invoice, sampleRoute(), "usd")
	require.NoError(t, err)

	settlement, err := MarkPaid(invoice, sampleRoute(), "eur")
	assert.Nil(t, settlement)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	// Existing data untouched by the rejected attempt.
	assert.Equal(t, "USD", invoice.ConversionDetails.CustomerCurrency)
}
