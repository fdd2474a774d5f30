// Package store persists generated decks.
//
// The engine itself is stateless; storage is optional and sits behind the
// Store interface. The memory backend serves tests and single-shot CLI runs,
// the MongoDB backend serves deployments that keep generation history.
package store

import (
	"context"
	"time"

	"github.com/slidegen/slidegen/pkg/deck"
)

// Store is the interface for deck storage backends.
type Store interface {
	// Save stores a deck, replacing any existing deck with the same ID.
	Save(ctx context.Context, d *deck.Deck) error

	// Get retrieves a deck by ID. A missing deck returns a DECK_NOT_FOUND
	// error.
	Get(ctx context.Context, id string) (*deck.Deck, error)

	// List returns summaries of stored decks, newest first. A non-positive
	// limit returns all.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a deck. Deleting a missing deck returns DECK_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Summary is the listing view of a stored deck.
type Summary struct {
	ID         string    `json:"id" bson:"_id"`
	Title      string    `json:"title" bson:"title"`
	SlideCount int       `json:"slide_count" bson:"slide_count"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
