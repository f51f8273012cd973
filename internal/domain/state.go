package domain

// Status is the load status of a wishlist view state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is the wishlist view state consumed by storefront clients: the item
// list, the load status, and the last error message when Status is
// StatusError. Item order is insertion order, preserved for display
// stability only.
type State struct {
	Items     []WishlistItem `json:"items"`
	Status    Status         `json:"status"`
	LastError string         `json:"last_error,omitempty"`
}

// NewState returns the empty initial state.
func NewState() State {
	return State{Items: []WishlistItem{}, Status: StatusIdle}
}

// Contains reports whether the state holds an item for the given product.
func (s State) Contains(productID string) bool {
	return FindItem(s.Items, productID) >= 0
}

// Intent is a requested state transition. Intents carry no behavior; Reduce
// is the single place transitions happen.
type Intent interface {
	isIntent()
}

// LoadStart marks the beginning of a fetch or refresh.
type LoadStart struct{}

// LoadSuccess replaces the item list with a freshly loaded one.
type LoadSuccess struct {
	Items []WishlistItem
}

// LoadError records a load failure. Items stay at their last-known value.
type LoadError struct {
	Message string
}

// ItemAdded appends a confirmed item. De-duplication happens before
// dispatch; Reduce appends unconditionally.
type ItemAdded struct {
	Item WishlistItem
}

// ItemRemoved drops the item with the matching product ID, if present.
type ItemRemoved struct {
	ProductID string
}

// Cleared empties the item list.
type Cleared struct{}

func (LoadStart) isIntent()   {}
func (LoadSuccess) isIntent() {}
func (LoadError) isIntent()   {}
func (ItemAdded) isIntent()   {}
func (ItemRemoved) isIntent() {}
func (Cleared) isIntent()     {}

// Reduce applies one intent to a state and returns the next state. It is
// pure: no I/O, no clock, and the input state and intent payloads are never
// mutated. Unknown intents return the state unchanged.
func Reduce(s State, intent Intent) State {
	switch in := intent.(type) {
	case LoadStart:
		s.Status = StatusLoading
		s.LastError = ""
		return s

	case LoadSuccess:
		s.Items = append([]WishlistItem{}, in.Items...)
		s.Status = StatusReady
		s.LastError = ""
		return s

	case LoadError:
		s.Status = StatusError
		s.LastError = in.Message
		return s

	case ItemAdded:
		items := make([]WishlistItem, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		s.Items = append(items, in.Item)
		s.Status = StatusReady
		s.LastError = ""
		return s

	case ItemRemoved:
		items := make([]WishlistItem, 0, len(s.Items))
		for _, item := range s.Items {
			if item.ProductID != in.ProductID {
				items = append(items, item)
			}
		}
		s.Items = items
		s.Status = StatusReady
		s.LastError = ""
		return s

	case Cleared:
		s.Items = []WishlistItem{}
		s.Status = StatusReady
		s.LastError = ""
		return s

	default:
		return s
	}
}
