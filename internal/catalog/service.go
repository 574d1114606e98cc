package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
)

// ReorderDirection names which way an admin moves an item in the menu.
type ReorderDirection string

const (
	ReorderUp   ReorderDirection = "up"
	ReorderDown ReorderDirection = "down"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes catalog reads for the kiosk and catalog writes for the
// admin dashboard.
type Service interface {
	GetItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error)
	ListAll(ctx context.Context) ([]models.FoodItem, error)
	Menu(ctx context.Context, side enums.LineSide) ([]models.FoodItem, error)
	CreateItem(ctx context.Context, input ItemInput) (*models.FoodItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.FoodItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, id uuid.UUID, direction ReorderDirection) ([]models.FoodItem, error)
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService builds a catalog service backed by the provided stack.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// ItemInput carries the admin-editable fields of a food item.
type ItemInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	DietaryTags []enums.DietaryTag
	LineSide    enums.LineSide
	Origin      *string
}

func (in ItemInput) validate() error {
	if in.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if in.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item price must be non-negative")
	}
	if !in.LineSide.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "line side must be Left or Right")
	}
	for _, tag := range in.DietaryTags {
		if !tag.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown dietary tag %q", tag))
		}
	}
	return nil
}

func (in ItemInput) tagArray() pq.StringArray {
	out := make(pq.StringArray, 0, len(in.DietaryTags))
	for _, tag := range in.DietaryTags {
		out = append(out, string(tag))
	}
	return out
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]models.FoodItem, error) {
	return s.repo.ListAll(ctx)
}

// Menu returns the items a kiosk on the given serving line can sell, in
// display order.
func (s *service) Menu(ctx context.Context, side enums.LineSide) ([]models.FoodItem, error) {
	if !side.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line side must be Left or Right")
	}
	return s.repo.ListBySide(ctx, side)
}

// CreateItem appends a new item at the end of its serving line.
func (s *service) CreateItem(ctx context.Context, input ItemInput) (*models.FoodItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var created *models.FoodItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		sortOrder, err := repo.NextSortOrder(ctx, input.LineSide)
		if err != nil {
			return err
		}

		item := &models.FoodItem{
			Name:        input.Name,
			Price:       input.Price,
			Description: input.Description,
			ImageURL:    input.ImageURL,
			DietaryTags: input.tagArray(),
			LineSide:    input.LineSide,
			Origin:      input.Origin,
			SortOrder:   sortOrder,
		}
		created, err = repo.Create(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateItem replaces the editable fields of an existing item. Moving an
// item to the other serving line sends it to the end of that line.
func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.FoodItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var updated *models.FoodItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if item.LineSide != input.LineSide {
			sortOrder, err := repo.NextSortOrder(ctx, input.LineSide)
			if err != nil {
				return err
			}
			item.SortOrder = sortOrder
		}

		item.Name = input.Name
		item.Price = input.Price
		item.Description = input.Description
		item.ImageURL = input.ImageURL
		item.DietaryTags = input.tagArray()
		item.LineSide = input.LineSide
		item.Origin = input.Origin

		updated, err = repo.Update(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Reorder moves an item one position up or down within its serving line by
// swapping integer sort positions with its neighbor. Moving past the edge
// of the line is a no-op. Returns the line in its new display order.
func (s *service) Reorder(ctx context.Context, id uuid.UUID, direction ReorderDirection) ([]models.FoodItem, error) {
	if direction != ReorderUp && direction != ReorderDown {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "direction must be up or down")
	}

	var side enums.LineSide
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		side = item.LineSide

		neighbor, err := repo.Neighbor(ctx, item, direction == ReorderUp)
		if err != nil {
			return err
		}
		if neighbor == nil {
			return nil
		}
		return repo.SwapSortOrder(ctx, item, neighbor)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.ListBySide(ctx, side)
}
