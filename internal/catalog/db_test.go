package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.FoodItem{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

type sameConnRunner struct {
	db *gorm.DB
}

func (r sameConnRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func seedItem(t *testing.T, conn *gorm.DB, name string, side enums.LineSide, sortOrder int) *models.FoodItem {
	t.Helper()

	item := &models.FoodItem{
		Name:      name,
		Price:     decimal.RequireFromString("10.00"),
		LineSide:  side,
		SortOrder: sortOrder,
	}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("seed item %q: %v", name, err)
	}
	return item
}
