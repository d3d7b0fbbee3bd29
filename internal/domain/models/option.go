package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/guregu/null/v6"
)

// FlexString decodes a JSON string, number or null into its textual form.
// The options endpoint sends numbers as strings, but not consistently.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(b)
	return nil
}

func (s FlexString) String() string { return string(s) }

// RawOptionQuote is one record of the historical options endpoint, as sent.
type RawOptionQuote struct {
	ContractID        FlexString `json:"contractID"`
	Symbol            FlexString `json:"symbol"`
	Expiration        FlexString `json:"expiration"`
	Strike            FlexString `json:"strike"`
	Type              FlexString `json:"type"`
	Last              FlexString `json:"last"`
	Mark              FlexString `json:"mark"`
	Bid               FlexString `json:"bid"`
	BidSize           FlexString `json:"bid_size"`
	Ask               FlexString `json:"ask"`
	AskSize           FlexString `json:"ask_size"`
	Volume            FlexString `json:"volume"`
	OpenInterest      FlexString `json:"open_interest"`
	Date              FlexString `json:"date"`
	ImpliedVolatility FlexString `json:"implied_volatility"`
	Delta             FlexString `json:"delta"`
	Gamma             FlexString `json:"gamma"`
	Theta             FlexString `json:"theta"`
	Vega              FlexString `json:"vega"`
	Rho               FlexString `json:"rho"`
}

// OptionQuote is an options record enriched with the underlying close and
// derived columns. Numeric columns are null when coercion failed.
type OptionQuote struct {
	ContractID        string     `json:"contract_id"`
	Symbol            string     `json:"symbol"`
	Type              string     `json:"type"`
	Date              time.Time  `json:"date"`
	Expiration        string     `json:"expiration"`
	OptionExpiration  *time.Time `json:"option_expiration,omitempty"`
	Strike            null.Float `json:"strike"`
	Last              null.Float `json:"last"`
	Mark              null.Float `json:"mark"`
	Bid               null.Float `json:"bid"`
	BidSize           null.Float `json:"bid_size"`
	Ask               null.Float `json:"ask"`
	AskSize           null.Float `json:"ask_size"`
	Volume            null.Float `json:"volume"`
	OpenInterest      null.Float `json:"open_interest"`
	ImpliedVolatility null.Float `json:"implied_volatility"`
	Delta             null.Float `json:"delta"`
	Gamma             null.Float `json:"gamma"`
	Theta             null.Float `json:"theta"`
	Vega              null.Float `json:"vega"`
	Rho               null.Float `json:"rho"`
	TTM               null.Int   `json:"ttm"`
	StockPriceClose   null.Float `json:"stock_price_close"`
	OptionID          string     `json:"option_id"`
	SelectionDate     int        `json:"selection_date"`
	MeanPrice         null.Float `json:"mean_price"`
}

// DayStatus classifies one options endpoint response.
type DayStatus int

const (
	DaySuccess DayStatus = iota
	DayInformational
	DayUnrecognized
)

func (s DayStatus) String() string {
	switch s {
	case DaySuccess:
		return "success"
	case DayInformational:
		return "informational"
	default:
		return "unrecognized"
	}
}

// OptionsDay is the classified response for a single request date.
type OptionsDay struct {
	Date    time.Time
	Status  DayStatus
	Reason  string // short label for unrecognised responses
	Message string // Information text, or why the response was not recognised
	Records []RawOptionQuote
}
