package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/abaleemmo/food-festival-express-checkout/api/middleware"
	"github.com/abaleemmo/food-festival-express-checkout/internal/catalog"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/config"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
)

type stubCatalog struct {
	items   []models.FoodItem
	reorder []models.FoodItem
	err     error
}

func (s *stubCatalog) GetItem(_ context.Context, id uuid.UUID) (*models.FoodItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
}

func (s *stubCatalog) ListAll(_ context.Context) ([]models.FoodItem, error) {
	return s.items, s.err
}

func (s *stubCatalog) Menu(_ context.Context, side enums.LineSide) ([]models.FoodItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.FoodItem
	for _, item := range s.items {
		if item.LineSide == side {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubCatalog) CreateItem(_ context.Context, input catalog.ItemInput) (*models.FoodItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	item := models.FoodItem{
		ID:       uuid.New(),
		Name:     input.Name,
		Price:    input.Price,
		LineSide: input.LineSide,
	}
	s.items = append(s.items, item)
	return &item, nil
}

func (s *stubCatalog) UpdateItem(_ context.Context, id uuid.UUID, input catalog.ItemInput) (*models.FoodItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, err := s.GetItem(context.Background(), id)
	if err != nil {
		return nil, err
	}
	item.Name = input.Name
	item.Price = input.Price
	return item, nil
}

func (s *stubCatalog) DeleteItem(_ context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubCatalog) Reorder(_ context.Context, id uuid.UUID, direction catalog.ReorderDirection) ([]models.FoodItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reorder, nil
}

func testItem(name, price string, side enums.LineSide, tags ...string) models.FoodItem {
	return models.FoodItem{
		ID:          uuid.New(),
		Name:        name,
		Price:       decimal.RequireFromString(price),
		DietaryTags: pq.StringArray(tags),
		LineSide:    side,
	}
}

func newKioskSession(t *testing.T, side enums.LineSide) *kiosksession.Session {
	t.Helper()

	manager := kiosksession.NewManager(config.SessionConfig{
		TTL:           time.Hour,
		SweepInterval: time.Hour,
	}, 3, nil)
	session, err := manager.Create(side)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func sessionRequest(t *testing.T, session *kiosksession.Session, method, target string, body any) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), session))
	}
	return req
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Code
}
