package models

// ContractParameters are the fabricated call arguments of a simulated
// settlement contract execution.
type ContractParameters struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Stablecoin string  `json:"stablecoin"`
	Amount     float64 `json:"amount"`
	USDValue   float64 `json:"usd_value"`
}

// ContractRecord is a simulated contract-execution record derived from a
// settlement's conversion details. Purely cosmetic, nothing is ever
// submitted to a chain.
type ContractRecord struct {
	ContractAddress string             `json:"contract_address"`
	Function        string             `json:"function"`
	Parameters      ContractParameters `json:"parameters"`
	Network         string             `json:"network"`
	Status          string             `json:"status"`
	Block           string             `json:"block"`

	// Base64 XDR of a simulated settlement payment, built offline and
	// never submitted.
	SettlementEnvelope string `json:"settlement_envelope,omitempty"`
}
