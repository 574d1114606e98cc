package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/types"
)

// Transaction is the write-once record persisted for each completed checkout.
type Transaction struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	UserID         *uuid.UUID             `gorm:"column:user_id;type:uuid"`
	TotalAmount    decimal.Decimal        `gorm:"column:total_amount;type:numeric(10,2);not null"`
	ItemCount      int                    `gorm:"column:item_count;not null"`
	ItemsPurchased types.TransactionLines `gorm:"column:items_purchased;type:jsonb;serializer:json;not null"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the id so inserts work the same on every dialect.
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
