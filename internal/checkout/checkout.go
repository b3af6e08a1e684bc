package checkout

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/logging"
	"github.com/foodhub75/Food-App/internal/models"
)

type State string

const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
)

const (
	taxRate     = 0.05
	DeliveryFee = 80
)

type Quote struct {
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"delivery_fee"`
	GrandTotal  int64 `json:"grand_total"`
}

// Price computes the checkout breakdown from a cart subtotal. Tax rounds half
// away from zero.
func Price(subtotal int64) Quote {
	tax := int64(math.Round(float64(subtotal) * taxRate))
	return Quote{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: DeliveryFee,
		GrandTotal:  subtotal + tax + DeliveryFee,
	}
}

// Settler simulates payment settlement. Settlement never fails; the only
// variation between implementations is when complete runs.
type Settler interface {
	Settle(ctx context.Context, complete func())
}

// DelaySettler completes after a fixed delay, like a payment gateway that
// always approves.
type DelaySettler struct {
	Delay time.Duration
}

func (s DelaySettler) Settle(_ context.Context, complete func()) {
	time.AfterFunc(s.Delay, complete)
}

// SyncSettler completes before returning. Used in tests.
type SyncSettler struct{}

func (SyncSettler) Settle(_ context.Context, complete func()) {
	complete()
}

type session struct {
	state   State
	orderID string
}

// Manager drives the per-user payment flow: Idle -> Processing -> Success.
// There is no failure state and no cancellation of an in-flight settlement.
type Manager struct {
	db       *gorm.DB
	settler  Settler
	producer *events.Producer

	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager(db *gorm.DB, settler Settler, producer *events.Producer) *Manager {
	return &Manager{
		db:       db,
		settler:  settler,
		producer: producer,
		sessions: make(map[string]*session),
	}
}

func (m *Manager) session(userID string) *session {
	s, ok := m.sessions[userID]
	if !ok {
		s = &session{state: StateIdle}
		m.sessions[userID] = s
	}
	return s
}

// State reports the user's current payment state and, once settled, the id of
// the order it produced.
func (m *Manager) State(userID string) (State, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session(userID)
	return s.state, s.orderID
}

// Reset returns a settled session to Idle. Any other state is left alone.
func (m *Manager) Reset(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session(userID)
	if s.state == StateSuccess {
		s.state = StateIdle
		s.orderID = ""
	}
}

// Start begins settlement for the user's cart. It is a guarded no-op when the
// cart is empty or a settlement is already in flight: the current state comes
// back and no second order can be produced. The cart and its priced total are
// frozen here, before the settler runs, so later cart mutations cannot leak
// into the order.
func (m *Manager) Start(ctx context.Context, userID, userName, method string) (State, error) {
	m.mu.Lock()
	s := m.session(userID)
	if s.state == StateProcessing {
		state := s.state
		m.mu.Unlock()
		return state, nil
	}

	var cart []models.CartItem
	if err := m.db.Where("user_id = ?", userID).Order("id ASC").Find(&cart).Error; err != nil {
		m.mu.Unlock()
		return s.state, fmt.Errorf("load cart: %w", err)
	}
	if len(cart) == 0 {
		state := s.state
		m.mu.Unlock()
		return state, nil
	}

	var subtotal int64
	frozen := make([]models.OrderItem, 0, len(cart))
	for _, item := range cart {
		subtotal += item.Price * int64(item.Quantity)
		frozen = append(frozen, models.OrderItem{
			MenuItemID:  item.MenuItemID,
			Name:        item.Name,
			Price:       item.Price,
			Category:    item.Category,
			Image:       item.Image,
			Description: item.Description,
			Rating:      item.Rating,
			Quantity:    item.Quantity,
		})
	}
	quote := Price(subtotal)

	s.state = StateProcessing
	s.orderID = ""
	m.mu.Unlock()

	m.settler.Settle(ctx, func() {
		m.complete(context.Background(), userID, userName, method, quote.GrandTotal, frozen)
	})
	return StateProcessing, nil
}

// complete materializes the order and empties the cart in one transaction,
// then moves the session to Success.
func (m *Manager) complete(ctx context.Context, userID, userName, method string, total int64, items []models.OrderItem) {
	order := models.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		UserName:      userName,
		Total:         total,
		Status:        models.StatusPending,
		PaymentMethod: method,
		CreatedAt:     time.Now(),
		Items:         items,
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})

	m.mu.Lock()
	s := m.session(userID)
	if err != nil {
		s.state = StateIdle
		m.mu.Unlock()
		logging.FromContext(ctx).Error("settlement failed to record order", "error", err, "user_id", userID)
		return
	}
	s.state = StateSuccess
	s.orderID = order.ID
	m.mu.Unlock()

	if m.producer != nil {
		publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		event := map[string]any{
			"type":     "order_created",
			"userID":   userID,
			"orderID":  order.ID,
			"total":    order.Total,
			"method":   order.PaymentMethod,
			"itemsLen": len(order.Items),
		}
		if err := m.producer.PublishEvent(publishCtx, events.TopicOrderEvents, userID, event); err != nil {
			logging.FromContext(ctx).Error("kafka publish error", "error", err)
		}
	}
}
