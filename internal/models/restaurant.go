package models

// Restaurant is the authoritative store for the front of house: money,
// reputation, the door queue, seated customers, orders, stock and the menu.
// A customer is in exactly one of the queue or the active set, or gone.
type Restaurant struct {
	Funds            float64               `json:"funds"`
	Reputation       float64               `json:"reputation"`
	CustomerCapacity int                   `json:"customerCapacity"`
	CustomerQueue    []*Customer           `json:"customerQueue"`
	ActiveCustomers  []*Customer           `json:"activeCustomers"`
	ActiveOrders     []*Order              `json:"activeOrders"`
	CompletedOrders  []*Order              `json:"completedOrders"`
	Inventory        map[string]*Ingredient `json:"inventory"`
	Menu             map[string]*Dish       `json:"menu"`
	UnlockedDishes   []string              `json:"unlockedDishes"`
}

// RestaurantOption overrides a default field on a new Restaurant.
type RestaurantOption func(*Restaurant)

func WithFunds(f float64) RestaurantOption {
	return func(r *Restaurant) { r.Funds = f }
}

func WithReputation(rep float64) RestaurantOption {
	return func(r *Restaurant) { r.Reputation = rep }
}

func WithCustomerCapacity(n int) RestaurantOption {
	return func(r *Restaurant) { r.CustomerCapacity = n }
}

func WithInventory(items ...*Ingredient) RestaurantOption {
	return func(r *Restaurant) {
		for _, item := range items {
			r.Inventory[item.ID] = item
		}
	}
}

func WithMenu(dishes ...*Dish) RestaurantOption {
	return func(r *Restaurant) {
		for _, d := range dishes {
			r.Menu[d.ID] = d
			r.UnlockedDishes = append(r.UnlockedDishes, d.ID)
		}
	}
}

// NewRestaurant creates an empty restaurant with default funds and capacity.
func NewRestaurant(opts ...RestaurantOption) *Restaurant {
	r := &Restaurant{
		Funds:            500,
		Reputation:       50,
		CustomerCapacity: 8,
		Inventory:        make(map[string]*Ingredient),
		Menu:             make(map[string]*Dish),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clone copies the restaurant's configuration state: funds, reputation,
// capacity, stock levels and the menu. Customers and orders are not carried
// over; a clone starts with an empty floor. Dish definitions are immutable
// and shared.
func (r *Restaurant) Clone() *Restaurant {
	c := &Restaurant{
		Funds:            r.Funds,
		Reputation:       r.Reputation,
		CustomerCapacity: r.CustomerCapacity,
		Inventory:        make(map[string]*Ingredient, len(r.Inventory)),
		Menu:             make(map[string]*Dish, len(r.Menu)),
		UnlockedDishes:   append([]string(nil), r.UnlockedDishes...),
	}
	for id, ing := range r.Inventory {
		copied := *ing
		c.Inventory[id] = &copied
	}
	for id, d := range r.Menu {
		c.Menu[id] = d
	}
	return c
}

// QueuedCustomer returns the queued customer with the given id and its queue
// position, or nil and -1.
func (r *Restaurant) QueuedCustomer(id string) (*Customer, int) {
	for i, c := range r.CustomerQueue {
		if c.ID == id {
			return c, i
		}
	}
	return nil, -1
}

// ActiveCustomer returns the seated customer with the given id and its
// index, or nil and -1.
func (r *Restaurant) ActiveCustomer(id string) (*Customer, int) {
	for i, c := range r.ActiveCustomers {
		if c.ID == id {
			return c, i
		}
	}
	return nil, -1
}

// ActiveOrder returns the in-flight order with the given id and its index,
// or nil and -1.
func (r *Restaurant) ActiveOrder(id string) (*Order, int) {
	for i, o := range r.ActiveOrders {
		if o.ID == id {
			return o, i
		}
	}
	return nil, -1
}

// ArchiveOrder moves an active order to the completed list.
func (r *Restaurant) ArchiveOrder(id string) *Order {
	o, i := r.ActiveOrder(id)
	if o == nil {
		return nil
	}
	r.ActiveOrders = append(r.ActiveOrders[:i], r.ActiveOrders[i+1:]...)
	r.CompletedOrders = append(r.CompletedOrders, o)
	return o
}
