package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionLine is the immutable snapshot of one cart line captured at
// checkout time.
type TransactionLine struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// TransactionLines is stored as a jsonb column on transactions.
type TransactionLines []TransactionLine
