// Package entity defines the entities and errors used in the application.
// It includes the URL, User and Category types along with the error kinds
// every storage backend and use case reports.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxURLLength is the maximum length of a target URL.
const MaxURLLength = 2048

// URL represents a shortened URL.
type URL struct {
	ID          uuid.UUID  // ID is the unique identifier of the URL.
	ShortCode   string     // ShortCode is the generated code used to shorten the original URL.
	OriginalURL string     // OriginalURL is the full URL that the short code resolves to.
	UserID      *uuid.UUID // UserID is the owner of the URL, nil for anonymous links.
	URLStats               // URLStats contains statistics about the URL.
	CreatedAt   time.Time  // CreatedAt is the timestamp when the URL was created.
	UpdatedAt   time.Time  // UpdatedAt is the timestamp when the URL was last updated.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	AccessCount int64 // AccessCount is the number of times the shortened URL has been accessed.
}

// HasOwner reports whether the URL belongs to a user.
func (u *URL) HasOwner() bool {
	return u.UserID != nil
}

// OwnedBy reports whether the URL belongs to the given user.
// An ownerless URL is not owned by anybody.
func (u *URL) OwnedBy(userID *uuid.UUID) bool {
	return u.UserID != nil && userID != nil && *u.UserID == *userID
}

// Timestamp returns the current time in the precision every backend stores.
func Timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
