package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCategoryIcon  = "folder"
	DefaultCategoryColor = "gray"
)

// Category groups URLs of a single owner.
type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
	Icon        string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryWithCount is a Category annotated with the number of distinct URLs attached to it.
type CategoryWithCount struct {
	Category
	URLCount int64
}
