package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
)

// Repository exposes persistence for the food item catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a single item.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading food item")
	}
	return &item, nil
}

// ListAll returns every item ordered by line side, then display order.
func (r *Repository) ListAll(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := r.db.WithContext(ctx).
		Order("line_side ASC").
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing food items")
	}
	return items, nil
}

// ListBySide returns the items for one serving line in display order.
func (r *Repository) ListBySide(ctx context.Context, side enums.LineSide) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := r.db.WithContext(ctx).
		Where("line_side = ?", side).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing food items by side")
	}
	return items, nil
}

// Create inserts a new item.
func (r *Repository) Create(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating food item")
	}
	return item, nil
}

// Update saves all mutable fields of the item.
func (r *Repository) Update(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating food item")
	}
	return item, nil
}

// Delete removes the item. Deleting an unknown id is reported as not found.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.FoodItem{}, "id = ?", id)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "deleting food item")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}
	return nil
}

// NextSortOrder returns the display position for a new item on the given
// side, one past the current maximum.
func (r *Repository) NextSortOrder(ctx context.Context, side enums.LineSide) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("line_side = ?", side).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading max sort order")
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// Neighbor finds the item adjacent to the given one in display order on the
// same serving line. Direction up means the closest smaller sort_order,
// down the closest larger. Returns nil when the item is already at the edge.
func (r *Repository) Neighbor(ctx context.Context, item *models.FoodItem, up bool) (*models.FoodItem, error) {
	q := r.db.WithContext(ctx).
		Where("line_side = ?", item.LineSide).
		Where("id <> ?", item.ID)

	if up {
		q = q.Where("sort_order < ?", item.SortOrder).Order("sort_order DESC")
	} else {
		q = q.Where("sort_order > ?", item.SortOrder).Order("sort_order ASC")
	}

	var neighbor models.FoodItem
	if err := q.First(&neighbor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding reorder neighbor")
	}
	return &neighbor, nil
}

// SwapSortOrder exchanges the display positions of two items.
func (r *Repository) SwapSortOrder(ctx context.Context, a, b *models.FoodItem) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Model(&models.FoodItem{}).Where("id = ?", a.ID).
		Update("sort_order", b.SortOrder).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "swapping sort order")
	}
	if err := tx.Model(&models.FoodItem{}).Where("id = ?", b.ID).
		Update("sort_order", a.SortOrder).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "swapping sort order")
	}
	return nil
}
