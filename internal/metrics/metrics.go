package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Ledger operations
	EarnsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_earns_total",
			Help: "Total earn entries committed",
		},
	)
	RedemptionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_redemptions_total",
			Help: "Total redeem entries committed",
		},
	)
	TokenReplaysTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_token_replays_total",
			Help: "Total consumption attempts on already-used tokens",
		},
	)
	InsufficientPointsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redemptions_insufficient_points_total",
			Help: "Total redemptions rejected for insufficient balance",
		},
	)

	// Reconciliation
	BalanceRepairsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_repairs_total",
			Help: "Total account balances rewritten to the ledger sum",
		},
	)
)

// Handler serves the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(EarnsTotal)
	prometheus.MustRegister(RedemptionsTotal)
	prometheus.MustRegister(TokenReplaysTotal)
	prometheus.MustRegister(InsufficientPointsTotal)
	prometheus.MustRegister(BalanceRepairsTotal)
}
