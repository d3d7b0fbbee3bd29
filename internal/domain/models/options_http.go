package models

// Requests for the options HTTP endpoints.

type OptionsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
	Start  string `query:"start" json:"start" validate:"required,datetime=2006-01-02"`
	End    string `query:"end" json:"end" validate:"required,datetime=2006-01-02"`
	Type   string `query:"type" json:"type" validate:"omitempty,max=8"`
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json csv"`
}

type PricesRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
}
