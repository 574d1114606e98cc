package kiosksession

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abaleemmo/food-festival-express-checkout/internal/cart"
	"github.com/abaleemmo/food-festival-express-checkout/internal/dietary"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/pagination"
)

// Session is the in-memory state of one kiosk screen: the shopper's cart,
// dietary restrictions, serving line, and menu position. A session has a
// single writer, the kiosk it belongs to, so all access goes through Do
// which serializes on the session mutex.
type Session struct {
	ID     uuid.UUID
	UserID *uuid.UUID

	mu            sync.Mutex
	lineSide      enums.LineSide
	cart          *cart.Cart
	restrictions  dietary.RestrictionSet
	menu          *pagination.Paginator
	checkoutState enums.CheckoutState
	lastSeen      time.Time
}

func newSession(side enums.LineSide, pageSize int, now time.Time) *Session {
	return &Session{
		ID:            uuid.New(),
		lineSide:      side,
		cart:          cart.New(),
		restrictions:  dietary.NewRestrictionSet(),
		menu:          pagination.New(pageSize),
		checkoutState: enums.CheckoutStateIdle,
		lastSeen:      now,
	}
}

// Side returns the serving line the kiosk is currently browsing.
func (s *Session) Side() enums.LineSide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lineSide
}

// Do runs fn with exclusive access to the session state.
func (s *Session) Do(fn func(state *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&State{session: s})
}

// State is the view handed to Do callbacks. It is only valid for the
// duration of the callback.
type State struct {
	session *Session
}

// Cart returns the session cart.
func (st *State) Cart() *cart.Cart {
	return st.session.cart
}

// Restrictions returns the active dietary restriction set.
func (st *State) Restrictions() dietary.RestrictionSet {
	return st.session.restrictions
}

// Menu returns the menu paginator.
func (st *State) Menu() *pagination.Paginator {
	return st.session.menu
}

// LineSide returns the serving line.
func (st *State) LineSide() enums.LineSide {
	return st.session.lineSide
}

// SetLineSide switches the serving line and restarts menu pagination so the
// next menu load seeds the new line's last page. The cart is kept, adds from
// the old line were already validated against it.
func (st *State) SetLineSide(side enums.LineSide) {
	if side == st.session.lineSide {
		return
	}
	st.session.lineSide = side
	st.session.menu = pagination.New(st.session.menu.PageSize())
}

// CheckoutState returns the current checkout lifecycle state.
func (st *State) CheckoutState() enums.CheckoutState {
	return st.session.checkoutState
}

// BeginCheckout moves the session into the submitting state. A checkout
// already in flight is rejected so double taps on the pay button cannot
// fork two submissions.
func (st *State) BeginCheckout() error {
	if st.session.checkoutState == enums.CheckoutStateSubmitting {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	}
	st.session.checkoutState = enums.CheckoutStateSubmitting
	return nil
}

// CompleteCheckout records a committed checkout and empties the cart. A
// committed session can start a fresh order, only Submitting blocks.
func (st *State) CompleteCheckout() {
	st.session.checkoutState = enums.CheckoutStateCommitted
	st.session.cart.Clear()
}

// FailCheckout returns the session to idle with the cart intact, so the
// shopper can retry without re-entering the order.
func (st *State) FailCheckout() {
	st.session.checkoutState = enums.CheckoutStateIdle
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
