// Package storage persists the data of the development backend.
package storage

import (
	"context"
	"errors"

	"github.com/nikbrunner/mev/internal/model"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrCredentials = errors.New("username or password does not match")
)

// Image is a stored picture.
type Image struct {
	MIME string
	Data []byte
}

// SearchQuery selects one page of menu items. Facets maps a facet key to
// the accepted option IDs; a menu matches when every listed facet matches
// one of its options.
type SearchQuery struct {
	Keyword string
	Facets  map[string][]string
	After   int64 // only items with a larger ID
	Limit   int
}

// Store is what the development server needs from persistence.
type Store interface {
	Search(ctx context.Context, q SearchQuery) ([]model.MenuItem, error)

	UpsertRestaurant(ctx context.Context, r model.Restaurant) (model.Restaurant, error)
	Menus(ctx context.Context, restaurantID string) ([]model.Menu, error)
	AddMenu(ctx context.Context, restaurantID, name string, img *Image) (model.Menu, error)
	MenuImage(ctx context.Context, menuID string) (Image, error)
	AddEvaluation(ctx context.Context, menuID string, ev model.Evaluation, img *Image) error

	CreateUser(ctx context.Context, username, email, password string) error
	Authenticate(ctx context.Context, username, password string) error
	CreateSession(ctx context.Context, username string) (string, error)
	EmailRegistered(ctx context.Context, email string) (bool, error)
	CreateVerification(ctx context.Context, email string) (string, error)
	UsernameByEmail(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email string) (string, error)
}
