package destination

import (
	"context"
	"errors"
)

// ErrNoDestination indicates that no destination chat has been registered yet.
// This is a valid state: the daily greeting job treats it as "nothing to do".
var ErrNoDestination = errors.New("no destination chat registered")

// Registry holds the single chat id that receives daily birthday greetings.
// Registering a new chat unconditionally overwrites the previous one.
type Registry interface {
	Register(ctx context.Context, chatID int64) error
	// Current returns the registered chat id, or ErrNoDestination.
	Current(ctx context.Context) (int64, error)
}
