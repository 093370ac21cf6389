package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt hashes without truncation.
const maxPasswordBytes = 72

type userRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type tokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type credentials struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type AuthUseCase struct {
	userRepo userRepository
	tokens   tokenIssuer
	hashCost int
}

func NewAuthUseCase(userRepo userRepository, tokens tokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

func validateCredentials(c credentials) error {
	var violations []entity.Violation

	if err := validateStruct(c); err != nil {
		var verr *entity.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		violations = verr.Violations
	}

	// validator counts runes, bcrypt counts bytes.
	passwordFlagged := slices.ContainsFunc(violations, func(v entity.Violation) bool {
		return v.Field == "password"
	})
	if len(c.Password) > maxPasswordBytes && !passwordFlagged {
		violations = append(violations, entity.Violation{
			Field:   "password",
			Message: fmt.Sprintf("must be at most %d bytes long", maxPasswordBytes),
		})
	}

	return entity.NewValidationError(violations)
}

// Register creates an account for email. The email is stored as given, apart
// from surrounding whitespace.
func (uc *AuthUseCase) Register(ctx context.Context, email, password string) (*entity.User, error) {
	const op = "usecase.AuthUseCase.Register"

	c := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := validateCredentials(c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := uc.userRepo.CreateUser(ctx, c.Email, string(hash))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	return user, nil
}

// Login checks the credentials and returns an access token. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	const op = "usecase.AuthUseCase.Login"

	user, err := uc.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
		}

		return "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("%s: failed to issue token: %w", op, err)
	}

	return token, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	const op = "usecase.AuthUseCase.Me"

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}

// DeleteAccount removes the user. Their URLs stay, without an owner.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	const op = "usecase.AuthUseCase.DeleteAccount"

	if err := uc.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("%s: failed to delete user: %w", op, err)
	}

	return nil
}
