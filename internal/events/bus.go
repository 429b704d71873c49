package events

import (
	"log"
	"sync"
	"time"
)

// Event names published by the simulation engine. The casing follows the
// original event vocabulary, which mixes snake_case and camelCase.
const (
	GameStarted          = "game_started"
	GamePaused           = "game_paused"
	GameOver             = "game_over"
	FrameUpdate          = "frameUpdate"
	DifficultyChanged    = "difficulty_changed"
	CustomerArrived      = "customer_arrived"
	CustomerSeated       = "customer_seated"
	CustomerLeft         = "customer_left"
	CustomerPatienceLow  = "customer_patience_critical"
	OrderReceived        = "order_received"
	OrderRushed          = "order_rushed"
	OrderServed          = "order_served"
	OrderCompleted       = "order_completed"
	PreparationStarted   = "preparationStarted"
	PreparationCompleted = "preparationCompleted"
	CookingStarted       = "cookingStarted"
	CookingCompleted     = "cookingCompleted"
	OvercookWarning      = "overcookWarning"
	PlatingStarted       = "platingStarted"
	PlatingCompleted     = "platingCompleted"
	EquipmentBroken      = "equipment_broken"
	IngredientPurchased  = "ingredient_purchased"
	IngredientUsed       = "ingredient_used"
	PaymentProcessed     = "payment_processed"
	ActionQueued         = "action_queued"
	ActionCompleted      = "action_completed"
	FundsChanged         = "funds_changed"
)

// All lists every event name the engine publishes, for consumers that
// mirror the full stream.
var All = []string{
	GameStarted, GamePaused, GameOver, FrameUpdate, DifficultyChanged,
	CustomerArrived, CustomerSeated, CustomerLeft, CustomerPatienceLow,
	OrderReceived, OrderRushed, OrderServed, OrderCompleted,
	PreparationStarted, PreparationCompleted,
	CookingStarted, CookingCompleted, OvercookWarning,
	PlatingStarted, PlatingCompleted, EquipmentBroken,
	IngredientPurchased, IngredientUsed,
	PaymentProcessed, FundsChanged,
	ActionQueued, ActionCompleted,
}

// maxHistory bounds the retained event log; oldest entries are evicted first.
const maxHistory = 100

// Record is one published event as retained in the bus history.
type Record struct {
	Name      string
	Timestamp time.Time
	Payload   map[string]interface{}
}

// Handler receives the payload of a published event.
type Handler func(payload map[string]interface{})

type subscription struct {
	id      int
	handler Handler
	once    bool
}

// Bus is a process-local publish/subscribe hub. One Bus is constructed per
// engine instance and injected into every subsystem; there is no package
// level instance.
type Bus struct {
	mu      sync.RWMutex
	nextID  int
	subs    map[string][]subscription
	history []Record
	now     func() time.Time
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]subscription),
		now:  time.Now,
	}
}

// Subscribe registers a handler for an event name and returns an
// unsubscribe function. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(name string, h Handler) func() {
	return b.add(name, h, false)
}

// SubscribeOnce registers a handler that is removed after its first
// invocation. The returned unsubscribe function cancels it early.
func (b *Bus) SubscribeOnce(name string, h Handler) func() {
	return b.add(name, h, true)
}

func (b *Bus) add(name string, h Handler, once bool) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, handler: h, once: once})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.removeLocked(name, id)
	}
}

func (b *Bus) removeLocked(name string, id int) {
	subs := b.subs[name]
	for i, s := range subs {
		if s.id == id {
			b.subs[name] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish appends the event to history and invokes every current subscriber.
// A panicking subscriber is recovered and logged; it never prevents the
// remaining subscribers from running and never reaches the publisher.
func (b *Bus) Publish(name string, payload map[string]interface{}) {
	b.mu.Lock()
	b.history = append(b.history, Record{Name: name, Timestamp: b.now(), Payload: payload})
	if len(b.history) > maxHistory {
		b.history = b.history[len(b.history)-maxHistory:]
	}

	subs := make([]subscription, len(b.subs[name]))
	copy(subs, b.subs[name])

	// Once-subscriptions are consumed by the publish that fires them.
	kept := b.subs[name][:0]
	for _, s := range b.subs[name] {
		if !s.once {
			kept = append(kept, s)
		}
	}
	b.subs[name] = kept
	b.mu.Unlock()

	for _, s := range subs {
		b.dispatch(name, s, payload)
	}
}

func (b *Bus) dispatch(name string, s subscription, payload map[string]interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event bus: subscriber for %q panicked: %v", name, r)
		}
	}()
	s.handler(payload)
}

// HasSubscribers reports whether any handler is registered for the event.
func (b *Bus) HasSubscribers(name string) bool {
	return b.SubscriberCount(name) > 0
}

// SubscriberCount returns the number of handlers registered for the event.
func (b *Bus) SubscriberCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[name])
}

// Clear removes all handlers for one event name.
func (b *Bus) Clear(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, name)
}

// ClearAll removes every handler for every event name. History is kept.
func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[string][]subscription)
}

// History returns retained events oldest-first. A limit of 0 returns all
// retained entries; a non-empty name filters to that event.
func (b *Bus) History(limit int, name string) []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Record, 0, len(b.history))
	for _, r := range b.history {
		if name == "" || r.Name == name {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
