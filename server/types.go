package server

import "github.com/ladelicato/salesbot/store"

// MetricsResponse is the dashboard payload. Field names match the
// front-end's expectations.
type MetricsResponse struct {
	TodaySales     float64            `json:"today_sales"`
	MonthSales     float64            `json:"month_sales"`
	ActiveSellers  int                `json:"active_sellers"`
	PendingClients int                `json:"pending_clients"`
	ChartData      []ChartPoint       `json:"chart_data"`
	RecentSales    []store.SaleRecord `json:"recent_sales"`
	BotOnline      bool               `json:"bot_online"`
	LastUpdate     string             `json:"last_update"`
}

type ChartPoint struct {
	Day    string  `json:"dia"`
	Amount float64 `json:"valor"`
}

// SaleRequest is the manual entry/edit body. Pointers distinguish "field
// absent" from zero values so edits only touch what was sent.
type SaleRequest struct {
	Customer *string  `json:"cliente"`
	Amount   *float64 `json:"valor"`
}

type SaleResponse struct {
	Status string           `json:"status"`
	Sale   store.SaleRecord `json:"venda"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
