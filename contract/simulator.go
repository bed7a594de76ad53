// Package contract fabricates simulated contract-execution records for
// display. Nothing here touches a blockchain: the settlement envelope is
// built and signed entirely offline and never submitted.
package contract

import (
	"fmt"
	"strings"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"

	"github.com/yourusername/crossover-billing/models"
)

// Simulator turns a settlement's conversion details into a fabricated
// contract-execution record.
type Simulator interface {
	Execute(conversion models.ConversionDetails) models.ContractRecord
}

// StellarSimulator fabricates the record fields and attaches a simulated
// settlement payment envelope built with throwaway keys.
type StellarSimulator struct {
	CompanyName string
	Network     string
}

func NewSimulator(companyName, networkLabel string) *StellarSimulator {
	return &StellarSimulator{CompanyName: companyName, Network: networkLabel}
}

func (s *StellarSimulator) Execute(conversion models.ConversionDetails) models.ContractRecord {
	coin := conversion.Stablecoin
	if coin == "" {
		coin = "USDC"
	}

	from := conversion.OnrampProvider
	if from == "" {
		from = "Customer"
	}

	record := models.ContractRecord{
		ContractAddress: fmt.Sprintf("0x%s1234abcd", strings.ToLower(coin)),
		Function:        "settlePayment",
		Parameters: models.ContractParameters{
			From:       from,
			To:         s.CompanyName,
			Stablecoin: coin,
			Amount:     conversion.StablecoinNeeded,
			USDValue:   conversion.USDReceived,
		},
		Network: s.Network,
		Status:  "Executed",
		Block:   fmt.Sprintf("#%d", int(conversion.StablecoinNeeded*1000)),
	}

	if envelope, err := s.buildEnvelope(coin, conversion.StablecoinNeeded); err == nil {
		record.SettlementEnvelope = envelope
	}

	return record
}

// buildEnvelope assembles a signed payment transaction from throwaway keys.
// The result is display material only.
func (s *StellarSimulator) buildEnvelope(coin string, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive, got %f", amount)
	}

	sourceKP, err := keypair.Random()
	if err != nil {
		return "", fmt.Errorf("failed to generate source keypair: %w", err)
	}
	destKP, err := keypair.Random()
	if err != nil {
		return "", fmt.Errorf("failed to generate destination keypair: %w", err)
	}
	issuerKP, err := keypair.Random()
	if err != nil {
		return "", fmt.Errorf("failed to generate issuer keypair: %w", err)
	}

	sourceAccount := txnbuild.SimpleAccount{AccountID: sourceKP.Address(), Sequence: 1}
	tx, err := txnbuild.NewTransaction(
		txnbuild.TransactionParams{
			SourceAccount:        &sourceAccount,
			IncrementSequenceNum: true,
			BaseFee:              txnbuild.MinBaseFee,
			Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewInfiniteTimeout()},
			Operations: []txnbuild.Operation{
				&txnbuild.Payment{
					Destination: destKP.Address(),
					Amount:      fmt.Sprintf("%.7f", amount),
					Asset:       txnbuild.CreditAsset{Code: coin, Issuer: issuerKP.Address()},
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to build settlement transaction: %w", err)
	}

	tx, err = tx.Sign(network.TestNetworkPassphrase, sourceKP)
	if err != nil {
		return "", fmt.Errorf("failed to sign settlement transaction: %w", err)
	}

	return tx.Base64()
}
