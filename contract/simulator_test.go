package contract

import (
	"testing"

	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/crossover-billing/models"
)

func sampleConversion() models.ConversionDetails {
	return models.ConversionDetails{
		Stablecoin:       "USDC",
		StablecoinNeeded: 121.608040201,
		USDReceived:      121.00,
		OnrampProvider:   "MoonPay",
		OfframpProvider:  "Circle",
	}
}

func TestExecuteFabricatesRecord(t *testing.T) {
	sim := NewSimulator("Crossover Solutions", "Polygon zkEVM")
	record := sim.Execute(sampleConversion())

	assert.Equal(t, "0xusdc1234abcd", record.ContractAddress)
	assert.Equal(t, "settlePayment", record.Function)
	assert.Equal(t, "MoonPay", record.Parameters.From)
	assert.Equal(t, "Crossover Solutions", record.Parameters.To)
	assert.Equal(t, "USDC", record.Parameters.Stablecoin)
	assert.InDelta(t, 121.608040201, record.Parameters.Amount, 1e-9)
	assert.InDelta(t, 121.00, record.Parameters.USDValue, 1e-9)
	assert.Equal(t, "Polygon zkEVM", record.Network)
	assert.Equal(t, "Executed", record.Status)
	assert.Equal(t, "#121608", record.Block)
}

func TestExecuteDefaults(t *testing.T) {
	sim := NewSimulator("Crossover Solutions", "Polygon zkEVM")
	record := sim.Execute(models.ConversionDetails{StablecoinNeeded: 10})

	assert.Equal(t, "0xusdc1234abcd", record.ContractAddress)
	assert.Equal(t, "Customer", record.Parameters.From)
	assert.Equal(t, "USDC", record.Parameters.Stablecoin)
}

func TestExecuteEnvelopeDecodes(t *testing.T) {
	sim := NewSimulator("Crossover Solutions", "Polygon zkEVM")
	record := sim.Execute(sampleConversion())
	require.NotEmpty(t, record.SettlementEnvelope)

	generic, err := txnbuild.TransactionFromXDR(record.SettlementEnvelope)
	require.NoError(t, err)
	tx, ok := generic.Transaction()
	require.True(t, ok)

	require.Len(t, tx.Operations(), 1)
	op, ok := tx.Operations()[0].(*txnbuild.Payment)
	require.True(t, ok)
	asset, ok := op.Asset.(txnbuild.CreditAsset)
	require.True(t, ok)
	assert.Equal(t, "USDC", asset.Code)
	assert.Len(t, tx.Signatures(), 1)
}

func TestExecuteSkipsEnvelopeForNonPositiveAmount(t *testing.T) {
	sim := NewSimulator("Crossover Solutions", "Polygon zkEVM")
	record := sim.Execute(models.ConversionDetails{Stablecoin: "DAI"})

	assert.Equal(t, "#0", record.Block)
	assert.Empty(t, record.SettlementEnvelope)
}
