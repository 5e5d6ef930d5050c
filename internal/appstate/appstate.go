// Package appstate models storefront navigation as an explicit state
// container updated through a pure reducer, so transitions are deterministic
// and testable in isolation.
package appstate

import "sync"

// View is one of the four storefront screens.
type View string

const (
	ViewStorefront View = "STOREFRONT"
	ViewCustomizer View = "PRODUCT_CUSTOMIZER"
	ViewCart       View = "CART"
	ViewCheckout   View = "CHECKOUT"
)

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewStorefront, ViewCustomizer, ViewCart, ViewCheckout:
		return true
	}
	return false
}

// State is the navigation snapshot: the visible screen and the product the
// customizer would open.
type State struct {
	View              View   `json:"view"`
	SelectedProductID string `json:"selectedProductId,omitempty"`
}

// Initial is the state on startup and after restart.
func Initial() State {
	return State{View: ViewStorefront}
}

type EventKind string

const (
	EventSelectProduct EventKind = "selectProduct"
	EventNavigate      EventKind = "navigate"
	EventRestart       EventKind = "restart"
)

type Event struct {
	Kind      EventKind
	View      View
	ProductID string
}

// Reduce applies an event to a state. All transitions are user-triggered and
// unconditional, except that entering the customizer without a selected
// product falls back to the storefront.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case EventSelectProduct:
		if e.ProductID == "" {
			return s
		}
		s.SelectedProductID = e.ProductID
		s.View = ViewCustomizer
		return s
	case EventNavigate:
		if !e.View.Valid() {
			return s
		}
		if e.View == ViewCustomizer && s.SelectedProductID == "" {
			s.View = ViewStorefront
			return s
		}
		s.View = e.View
		return s
	case EventRestart:
		return Initial()
	}
	return s
}

// Container guards a State for concurrent HTTP access. Dispatch runs the
// reducer; reads return a copy.
type Container struct {
	mu    sync.Mutex
	state State
}

func NewContainer() *Container {
	return &Container{state: Initial()}
}

func (c *Container) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Container) Dispatch(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
	return c.state
}
