package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
)

// FoodItem is one orderable catalog entry. Line side and origin are opaque
// pass-through attributes set by the admin workflow.
type FoodItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	ImageURL    string          `gorm:"column:image_url;not null;default:''"`
	DietaryTags pq.StringArray  `gorm:"column:dietary_tags;type:text[];not null;default:ARRAY[]::text[]"`
	LineSide    enums.LineSide  `gorm:"column:line_side;not null"`
	Origin      *string         `gorm:"column:origin"`
	SortOrder   int             `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the id so inserts work the same on every dialect.
func (f *FoodItem) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Tags converts the stored tag array into the typed enumeration, skipping
// values outside the closed set.
func (f FoodItem) Tags() []enums.DietaryTag {
	tags := make([]enums.DietaryTag, 0, len(f.DietaryTags))
	for _, raw := range f.DietaryTags {
		if tag, err := enums.ParseDietaryTag(raw); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}
