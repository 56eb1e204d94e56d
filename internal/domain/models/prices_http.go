package models

// Requests and responses of the read-only dashboard API.

type PricesRequest struct {
	Key    string `param:"key" json:"key" validate:"required"`
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=1w 1m 3m 6m 1y 3y 5y"`
	From   string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
}

type CompareRequest struct {
	Keys   string `query:"keys" json:"keys" validate:"required"`
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=1w 1m 3m 6m 1y 3y 5y"`
	From   string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
}

type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type PricesResponse struct {
	Key            string       `json:"key"`
	DisplayName    string       `json:"display_name"`
	CurrencySymbol string       `json:"currency_symbol"`
	From           string       `json:"from"`
	Count          int          `json:"count"`
	Prices         []PricePoint `json:"prices"`
}

type SummaryResponse struct {
	Key            string      `json:"key"`
	DisplayName    string      `json:"display_name"`
	CurrencySymbol string      `json:"currency_symbol"`
	From           string      `json:"from"`
	Latest         *PricePoint `json:"latest"`
	StartPrice     float64     `json:"start_price"`
	Change         float64     `json:"change"`
	ChangePct      *float64    `json:"change_pct"`
	Count          int         `json:"count"`
}

type CompareSeries struct {
	Key    string         `json:"key"`
	Points []ComparePoint `json:"points"`
}

type ComparePoint struct {
	Date      string  `json:"date"`
	ChangePct float64 `json:"change_pct"`
}
