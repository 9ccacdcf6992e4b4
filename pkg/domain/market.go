package domain

import "github.com/bankline/bankline/pkg/money"

// BalanceAmount is the nested balance shape used by the open-banking
// provider.
type BalanceAmount struct {
	Amount   float64    `json:"amount"`
	Currency money.Code `json:"currency"`
}

// BankAccount is an account as returned by the open-banking provider.
type BankAccount struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	Type    string        `json:"type"`
	Balance BalanceAmount `json:"balance"`
	BankID  string        `json:"bank_id"`
}

// BankTransaction is a transaction record as returned by the open-banking
// provider. The interesting fields live under Details.
type BankTransaction struct {
	ID          string `json:"id"`
	ThisAccount struct {
		ID string `json:"id"`
	} `json:"this_account"`
	OtherAccount struct {
		Holder struct {
			Name string `json:"name"`
		} `json:"holder"`
	} `json:"other_account"`
	Details BankTransactionDetails `json:"details"`
}

// BankTransactionDetails carries the type, description, timestamps and
// amounts of a bank transaction.
type BankTransactionDetails struct {
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Posted      string        `json:"posted"`
	Completed   string        `json:"completed"`
	NewBalance  BalanceAmount `json:"new_balance"`
	Value       BalanceAmount `json:"value"`
}

// CryptoCoin is a market entry from the crypto price provider.
type CryptoCoin struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	MarketCapRank     int     `json:"market_cap_rank"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	Image             string  `json:"image"`
}

// Stock is a simulated stock quote.
type Stock struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
}

// ETF is a simulated exchange-traded-fund quote.
type ETF struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
}

// AssistantReply is one answer from the financial assistant.
type AssistantReply struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}
