package export

import (
	"fmt"
	"io"
	"strconv"

	"OptionsPull/internal/domain/models"

	"github.com/gocarina/gocsv"
	"github.com/guregu/null/v6"
)

// optionRow is the flat CSV layout of an enriched quote. Null numerics are empty cells.
type optionRow struct {
	Date              string `csv:"date"`
	ContractID        string `csv:"contract_id"`
	Symbol            string `csv:"symbol"`
	Type              string `csv:"type"`
	Expiration        string `csv:"expiration"`
	Strike            string `csv:"strike"`
	Last              string `csv:"last"`
	Mark              string `csv:"mark"`
	Bid               string `csv:"bid"`
	BidSize           string `csv:"bid_size"`
	Ask               string `csv:"ask"`
	AskSize           string `csv:"ask_size"`
	Volume            string `csv:"volume"`
	OpenInterest      string `csv:"open_interest"`
	ImpliedVolatility string `csv:"implied_volatility"`
	Delta             string `csv:"delta"`
	Gamma             string `csv:"gamma"`
	Theta             string `csv:"theta"`
	Vega              string `csv:"vega"`
	Rho               string `csv:"rho"`
	TTM               string `csv:"ttm"`
	StockPriceClose   string `csv:"stock_price_close"`
	OptionID          string `csv:"option_id"`
	SelectionDate     int    `csv:"selection_date"`
	MeanPrice         string `csv:"mean_price"`
}

// WriteOptionsCSV writes quotes as CSV with a header row.
func WriteOptionsCSV(w io.Writer, quotes []models.OptionQuote) error {
	rows := make([]*optionRow, 0, len(quotes))
	for i := range quotes {
		rows = append(rows, toRow(&quotes[i]))
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}

func toRow(q *models.OptionQuote) *optionRow {
	r := &optionRow{
		ContractID:        q.ContractID,
		Symbol:            q.Symbol,
		Type:              q.Type,
		Expiration:        q.Expiration,
		Strike:            cell(q.Strike),
		Last:              cell(q.Last),
		Mark:              cell(q.Mark),
		Bid:               cell(q.Bid),
		BidSize:           cell(q.BidSize),
		Ask:               cell(q.Ask),
		AskSize:           cell(q.AskSize),
		Volume:            cell(q.Volume),
		OpenInterest:      cell(q.OpenInterest),
		ImpliedVolatility: cell(q.ImpliedVolatility),
		Delta:             cell(q.Delta),
		Gamma:             cell(q.Gamma),
		Theta:             cell(q.Theta),
		Vega:              cell(q.Vega),
		Rho:               cell(q.Rho),
		StockPriceClose:   cell(q.StockPriceClose),
		OptionID:          q.OptionID,
		SelectionDate:     q.SelectionDate,
		MeanPrice:         cell(q.MeanPrice),
	}
	if !q.Date.IsZero() {
		r.Date = q.Date.Format("2006-01-02")
	}
	if q.TTM.Valid {
		r.TTM = strconv.FormatInt(q.TTM.Int64, 10)
	}
	return r
}

func cell(f null.Float) string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}
