package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type InvestmentKind string

const (
	KindSIP      InvestmentKind = "sip"
	KindGold     InvestmentKind = "gold"
	KindSilver   InvestmentKind = "silver"
	KindProperty InvestmentKind = "property"
	KindStocks   InvestmentKind = "stocks"
	KindCrypto   InvestmentKind = "crypto"
)

// InvestmentKinds lists every supported kind in display order.
var InvestmentKinds = []InvestmentKind{KindSIP, KindGold, KindSilver, KindProperty, KindStocks, KindCrypto}

// Asset is the kind-specific part of an investment. The set of implementations
// is closed: SIP, Gold, Silver, Property, Stocks and Crypto.
type Asset interface {
	Kind() InvestmentKind
	isAsset()
}

type SIP struct {
	Fund          string          `json:"fund,omitempty"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	NextSipDate   string          `json:"next_sip_date,omitempty"` // YYYY-MM-DD
}

type Gold struct {
	AmountInvested decimal.Decimal `json:"amount_invested"`
	Grams          decimal.Decimal `json:"grams"`
}

type Silver struct {
	SilverAmount decimal.Decimal `json:"silver_amount"`
	Grams        decimal.Decimal `json:"grams"`
}

type Property struct {
	Location     string          `json:"location,omitempty"`
	BuyValue     decimal.Decimal `json:"buy_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	RentalIncome decimal.Decimal `json:"rental_income"`
}

type Stocks struct {
	Symbol       string          `json:"symbol,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

type Crypto struct {
	Coin         string          `json:"coin,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

func (SIP) Kind() InvestmentKind      { return KindSIP }
func (Gold) Kind() InvestmentKind     { return KindGold }
func (Silver) Kind() InvestmentKind   { return KindSilver }
func (Property) Kind() InvestmentKind { return KindProperty }
func (Stocks) Kind() InvestmentKind   { return KindStocks }
func (Crypto) Kind() InvestmentKind   { return KindCrypto }

func (SIP) isAsset()      {}
func (Gold) isAsset()     {}
func (Silver) isAsset()   {}
func (Property) isAsset() {}
func (Stocks) isAsset()   {}
func (Crypto) isAsset()   {}

type Investment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Asset     Asset     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Kind returns the asset kind, or "" when no asset is attached.
func (i Investment) Kind() InvestmentKind {
	if i.Asset == nil {
		return ""
	}
	return i.Asset.Kind()
}

func (i *Investment) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("investment name cannot be empty")
	}
	switch a := i.Asset.(type) {
	case nil:
		return fmt.Errorf("investment %q has no asset details", i.Name)
	case SIP:
		if a.MonthlyAmount.IsNegative() {
			return fmt.Errorf("SIP monthly amount cannot be negative")
		}
		return validateDate("next SIP date", a.NextSipDate, false)
	case Gold:
		if a.AmountInvested.IsNegative() {
			return fmt.Errorf("gold amount cannot be negative")
		}
	case Silver:
		if a.SilverAmount.IsNegative() {
			return fmt.Errorf("silver amount cannot be negative")
		}
	case Property:
		if a.BuyValue.IsNegative() || a.CurrentValue.IsNegative() {
			return fmt.Errorf("property values cannot be negative")
		}
	case Stocks:
		if a.Quantity.IsNegative() || a.BuyPrice.IsNegative() || a.CurrentPrice.IsNegative() {
			return fmt.Errorf("stock quantity and prices cannot be negative")
		}
	case Crypto:
		if a.Quantity.IsNegative() || a.BuyPrice.IsNegative() || a.CurrentPrice.IsNegative() {
			return fmt.Errorf("crypto quantity and prices cannot be negative")
		}
	}
	return nil
}

// ParseInvestmentKind validates a user-supplied kind.
func ParseInvestmentKind(s string) (InvestmentKind, error) {
	for _, k := range InvestmentKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid investment type %q (must be one of sip, gold, silver, property, stocks, crypto)", s)
}

// DecodeAsset builds the concrete asset for kind, filling it through decode.
// decode receives a pointer to the zero value of the variant.
func DecodeAsset(kind InvestmentKind, decode func(v interface{}) error) (Asset, error) {
	switch kind {
	case KindSIP:
		var a SIP
		err := decode(&a)
		return a, err
	case KindGold:
		var a Gold
		err := decode(&a)
		return a, err
	case KindSilver:
		var a Silver
		err := decode(&a)
		return a, err
	case KindProperty:
		var a Property
		err := decode(&a)
		return a, err
	case KindStocks:
		var a Stocks
		err := decode(&a)
		return a, err
	case KindCrypto:
		var a Crypto
		err := decode(&a)
		return a, err
	default:
		return nil, fmt.Errorf("unknown investment type %q", kind)
	}
}

type investmentJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      InvestmentKind  `json:"type"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

func (i Investment) MarshalJSON() ([]byte, error) {
	details, err := json.Marshal(i.Asset)
	if err != nil {
		return nil, err
	}
	return json.Marshal(investmentJSON{
		ID:        i.ID,
		Name:      i.Name,
		Type:      i.Kind(),
		Details:   details,
		CreatedAt: i.CreatedAt,
	})
}

func (i *Investment) UnmarshalJSON(data []byte) error {
	var raw investmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	details := raw.Details
	if len(details) == 0 || string(details) == "null" {
		details = []byte("{}")
	}
	asset, err := DecodeAsset(raw.Type, func(v interface{}) error {
		return json.Unmarshal(details, v)
	})
	if err != nil {
		return err
	}
	*i = Investment{ID: raw.ID, Name: raw.Name, Asset: asset, CreatedAt: raw.CreatedAt}
	return nil
}
