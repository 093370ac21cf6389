// Package memory implements the URL, category and user repositories on top of
// in-process maps. All three repositories share one Store so cascading deletes
// stay atomic.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

// Store holds every entity. Its maps are guarded by a single mutex that is held
// only for the duration of each map operation.
type Store struct {
	mu sync.RWMutex

	users    map[uuid.UUID]entity.User
	emails   map[string]uuid.UUID
	urls     map[string]*entity.URL
	codes    map[uuid.UUID]string
	cats     map[uuid.UUID]entity.Category
	catNames map[categoryName]uuid.UUID
	links    map[uuid.UUID]map[uuid.UUID]struct{}
}

type categoryName struct {
	userID uuid.UUID
	name   string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		emails:   make(map[string]uuid.UUID),
		urls:     make(map[string]*entity.URL),
		codes:    make(map[uuid.UUID]string),
		cats:     make(map[uuid.UUID]entity.Category),
		catNames: make(map[categoryName]uuid.UUID),
		links:    make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// checkContext maps a cancelled or expired context to ErrStorageUnavailable.
func checkContext(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStorageUnavailable, err)
	}
	return nil
}

func copyURL(u *entity.URL) *entity.URL {
	c := *u
	if u.UserID != nil {
		id := *u.UserID
		c.UserID = &id
	}
	return &c
}

func copyCategory(c entity.Category) *entity.Category {
	if c.Description != nil {
		d := *c.Description
		c.Description = &d
	}
	return &c
}
