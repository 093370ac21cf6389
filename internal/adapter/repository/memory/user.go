package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	const op = "adapter.repository.memory.UserRepository.CreateUser"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	now := entity.Timestamp()
	user := entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.emails[email]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrEmailExists)
	}

	r.s.users[user.ID] = user
	r.s.emails[email] = user.ID

	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	const op = "adapter.repository.memory.UserRepository.GetUserByEmail"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	user := r.s.users[id]
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	const op = "adapter.repository.memory.UserRepository.GetUserByID"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	return &user, nil
}

// DeleteUser removes the user, orphans their URLs and deletes their categories.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "adapter.repository.memory.UserRepository.DeleteUser"

	if err := checkContext(ctx, op); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	delete(r.s.users, id)
	delete(r.s.emails, user.Email)

	for _, url := range r.s.urls {
		if url.UserID != nil && *url.UserID == id {
			url.UserID = nil
		}
	}
	for catID, c := range r.s.cats {
		if c.UserID == id {
			r.s.deleteCategoryLocked(catID)
		}
	}

	return nil
}
