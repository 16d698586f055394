package reward

import (
	"time"

	"github.com/google/uuid"
)

// Method defines the supported payout channels
type Method string

const (
	MethodCash         Method = "Cash"
	MethodGCash        Method = "GCash"
	MethodBankTransfer Method = "Bank Transfer"
)

// Reward is one redeemable catalog item: CostPoints is the balance
// deducted, ValuePHP the payout the user receives.
type Reward struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Method     Method    `json:"method"`
	CostPoints int64     `json:"cost_points"`
	ValuePHP   int64     `json:"value_php"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}
