package store

import "github.com/bankline/bankline/pkg/domain"

// Event type names handlers register under.
const (
	EventTransactionAdded = "transaction.added"
	EventBalanceUpdated   = "balance.updated"
	EventThemeChanged     = "theme.changed"
	EventSessionChanged   = "session.changed"
	EventSliceChanged     = "slice.changed"
)

// TransactionAdded is published after a transaction and the balance have
// been updated together.
type TransactionAdded struct {
	Transaction domain.Transaction
	Balance     float64
}

// Type returns the event type name.
func (TransactionAdded) Type() string { return EventTransactionAdded }

// BalanceUpdated is published after an unconditional balance replacement.
type BalanceUpdated struct {
	Balance float64
}

// Type returns the event type name.
func (BalanceUpdated) Type() string { return EventBalanceUpdated }

// ThemeChanged is published after the theme flips.
type ThemeChanged struct {
	Theme Theme
}

// Type returns the event type name.
func (ThemeChanged) Type() string { return EventThemeChanged }

// SessionChanged is published after the authentication flag toggles.
type SessionChanged struct {
	Authenticated bool
}

// Type returns the event type name.
func (SessionChanged) Type() string { return EventSessionChanged }

// SliceChanged is published on every domain slice transition.
type SliceChanged struct {
	Domain string
	Status Status
}

// Type returns the event type name.
func (SliceChanged) Type() string { return EventSliceChanged }
