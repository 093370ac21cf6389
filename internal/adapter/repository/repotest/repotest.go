// Package repotest holds the behaviour every repository backend must share.
// Backend packages run Suite against their own constructors.
package repotest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"golang.org/x/sync/errgroup"
)

type URLRepository interface {
	CreateURL(ctx context.Context, url *entity.URL) (*entity.URL, error)
	GetURLByCode(ctx context.Context, shortCode string) (*entity.URL, error)
	UpdateURL(ctx context.Context, shortCode, originalURL string) (*entity.URL, error)
	DeleteURL(ctx context.Context, shortCode string) error
	IncrementAccessCount(ctx context.Context, shortCode string) (*entity.URL, error)
	ListURLsByOwner(ctx context.Context, userID uuid.UUID) ([]entity.URL, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategoriesWithURLCount(ctx context.Context, userID uuid.UUID) ([]entity.CategoryWithCount, error)
	OwnedCategoryIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)
	AttachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error
	DetachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error
	ListURLsByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.URL, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type Repos struct {
	URLs       URLRepository
	Categories CategoryRepository
	Users      UserRepository
}

// Suite exercises a backend through Repos. NewRepos is called before every test.
// Tests only create uniquely named rows, so backends may share state between tests.
type Suite struct {
	suite.Suite
	NewRepos func() Repos

	ctx   context.Context
	repos Repos
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.repos = s.NewRepos()
}

func uniqueCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (s *Suite) createUser() *entity.User {
	u, err := s.repos.Users.CreateUser(s.ctx, uuid.NewString()+"@example.com", "hash")
	s.Require().NoError(err)
	return u
}

func (s *Suite) createURL(code string, owner *uuid.UUID) *entity.URL {
	url, err := s.repos.URLs.CreateURL(s.ctx, &entity.URL{
		ShortCode:   code,
		OriginalURL: "https://example.com/" + code,
		UserID:      owner,
	})
	s.Require().NoError(err)
	return url
}

func (s *Suite) createCategory(owner uuid.UUID, name string) *entity.Category {
	c, err := s.repos.Categories.CreateCategory(s.ctx, &entity.Category{
		UserID: owner,
		Name:   name,
		Icon:   entity.DefaultCategoryIcon,
		Color:  entity.DefaultCategoryColor,
	})
	s.Require().NoError(err)
	return c
}

func (s *Suite) TestUsers() {
	email := uuid.NewString() + "@Example.com"

	u, err := s.repos.Users.CreateUser(s.ctx, email, "hash")
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, u.ID)
	s.Equal(email, u.Email)
	s.False(u.CreatedAt.IsZero())

	_, err = s.repos.Users.CreateUser(s.ctx, email, "other")
	s.ErrorIs(err, entity.ErrEmailExists)

	got, err := s.repos.Users.GetUserByEmail(s.ctx, email)
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.Equal("hash", got.PasswordHash)

	_, err = s.repos.Users.GetUserByEmail(s.ctx, strings.ToLower(email))
	s.ErrorIs(err, entity.ErrUserNotFound)

	got, err = s.repos.Users.GetUserByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(email, got.Email)

	_, err = s.repos.Users.GetUserByID(s.ctx, uuid.New())
	s.ErrorIs(err, entity.ErrUserNotFound)
	s.ErrorIs(err, entity.ErrNotFound)
}

func (s *Suite) TestURLLifecycle() {
	code := uniqueCode()

	created := s.createURL(code, nil)
	s.NotEqual(uuid.Nil, created.ID)
	s.Equal(code, created.ShortCode)
	s.Nil(created.UserID)
	s.Zero(created.AccessCount)

	got, err := s.repos.URLs.GetURLByCode(s.ctx, code)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("https://example.com/"+code, got.OriginalURL)
	s.Zero(got.AccessCount)
	s.True(created.CreatedAt.Equal(got.CreatedAt))

	_, err = s.repos.URLs.CreateURL(s.ctx, &entity.URL{ShortCode: code, OriginalURL: "https://example.org"})
	s.ErrorIs(err, entity.ErrShortCodeExists)

	for want := int64(1); want <= 2; want++ {
		url, err := s.repos.URLs.IncrementAccessCount(s.ctx, code)
		s.Require().NoError(err)
		s.Equal(want, url.AccessCount)
	}

	time.Sleep(time.Millisecond)

	updated, err := s.repos.URLs.UpdateURL(s.ctx, code, "https://example.org/new")
	s.Require().NoError(err)
	s.Equal("https://example.org/new", updated.OriginalURL)
	s.Equal(code, updated.ShortCode)
	s.Equal(int64(2), updated.AccessCount)
	s.True(updated.UpdatedAt.After(got.UpdatedAt))
	s.True(updated.CreatedAt.Equal(got.CreatedAt))

	s.Require().NoError(s.repos.URLs.DeleteURL(s.ctx, code))

	_, err = s.repos.URLs.GetURLByCode(s.ctx, code)
	s.ErrorIs(err, entity.ErrURLNotFound)

	s.ErrorIs(s.repos.URLs.DeleteURL(s.ctx, code), entity.ErrURLNotFound)

	_, err = s.repos.URLs.UpdateURL(s.ctx, code, "https://example.org")
	s.ErrorIs(err, entity.ErrURLNotFound)

	_, err = s.repos.URLs.IncrementAccessCount(s.ctx, code)
	s.ErrorIs(err, entity.ErrURLNotFound)
}

func (s *Suite) TestShortCodesAreCaseSensitive() {
	code := "aB" + uniqueCode()
	swapped := "Ab" + code[2:]

	s.createURL(code, nil)
	s.createURL(swapped, nil)

	got, err := s.repos.URLs.GetURLByCode(s.ctx, swapped)
	s.Require().NoError(err)
	s.Equal(swapped, got.ShortCode)
}

func (s *Suite) TestCreateURLUnknownOwner() {
	owner := uuid.New()

	_, err := s.repos.URLs.CreateURL(s.ctx, &entity.URL{
		ShortCode:   uniqueCode(),
		OriginalURL: "https://example.com",
		UserID:      &owner,
	})
	s.ErrorIs(err, entity.ErrUserNotFound)
}

func (s *Suite) TestListURLsByOwner() {
	owner := s.createUser()

	first := s.createURL(uniqueCode(), &owner.ID)
	time.Sleep(time.Millisecond)
	second := s.createURL(uniqueCode(), &owner.ID)
	s.createURL(uniqueCode(), nil)

	urls, err := s.repos.URLs.ListURLsByOwner(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.Require().Len(urls, 2)
	s.Equal(second.ShortCode, urls[0].ShortCode)
	s.Equal(first.ShortCode, urls[1].ShortCode)

	urls, err = s.repos.URLs.ListURLsByOwner(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(urls)
}

func (s *Suite) TestConcurrentCreates() {
	const n = 20

	code := uniqueCode()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dups    int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := s.repos.URLs.CreateURL(s.ctx, &entity.URL{ShortCode: code, OriginalURL: "https://example.com"})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				created++
			case errors.Is(err, entity.ErrShortCodeExists):
				dups++
			}
		}()
	}

	wg.Wait()

	s.Equal(1, created)
	s.Equal(n-1, dups)
}

func (s *Suite) TestConcurrentIncrements() {
	const k = 50

	code := uniqueCode()
	s.createURL(code, nil)

	var g errgroup.Group
	for range k {
		g.Go(func() error {
			_, err := s.repos.URLs.IncrementAccessCount(s.ctx, code)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	got, err := s.repos.URLs.GetURLByCode(s.ctx, code)
	s.Require().NoError(err)
	s.Equal(int64(k), got.AccessCount)
}

func (s *Suite) TestCategories() {
	owner := s.createUser()
	other := s.createUser()

	work := s.createCategory(owner.ID, "Work")
	s.NotEqual(uuid.Nil, work.ID)
	s.Nil(work.Description)

	_, err := s.repos.Categories.CreateCategory(s.ctx, &entity.Category{
		UserID: owner.ID, Name: "Work", Icon: "folder", Color: "gray",
	})
	s.ErrorIs(err, entity.ErrCategoryExists)

	s.createCategory(owner.ID, "work")
	s.createCategory(other.ID, "Work")

	_, err = s.repos.Categories.CreateCategory(s.ctx, &entity.Category{
		UserID: uuid.New(), Name: "Orphan", Icon: "folder", Color: "gray",
	})
	s.ErrorIs(err, entity.ErrUserNotFound)

	description := "links for work"
	work.Description = &description
	work.Icon = "briefcase"
	updated, err := s.repos.Categories.UpdateCategory(s.ctx, work)
	s.Require().NoError(err)
	s.Equal("briefcase", updated.Icon)
	s.Require().NotNil(updated.Description)
	s.Equal(description, *updated.Description)

	renamed := *work
	renamed.Name = "work"
	_, err = s.repos.Categories.UpdateCategory(s.ctx, &renamed)
	s.ErrorIs(err, entity.ErrCategoryExists)

	got, err := s.repos.Categories.GetCategory(s.ctx, work.ID)
	s.Require().NoError(err)
	s.Equal("Work", got.Name)
	s.Equal(owner.ID, got.UserID)

	missing := *work
	missing.ID = uuid.New()
	_, err = s.repos.Categories.UpdateCategory(s.ctx, &missing)
	s.ErrorIs(err, entity.ErrCategoryNotFound)

	_, err = s.repos.Categories.GetCategory(s.ctx, uuid.New())
	s.ErrorIs(err, entity.ErrCategoryNotFound)
}

func (s *Suite) TestCategoryAssociations() {
	owner := s.createUser()
	other := s.createUser()

	work := s.createCategory(owner.ID, "Work")
	home := s.createCategory(owner.ID, "Home")
	foreign := s.createCategory(other.ID, "Foreign")

	url1 := s.createURL(uniqueCode(), &owner.ID)
	url2 := s.createURL(uniqueCode(), &owner.ID)

	owned, err := s.repos.Categories.OwnedCategoryIDs(s.ctx, owner.ID, []uuid.UUID{work.ID, foreign.ID, work.ID})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{work.ID}, owned)

	s.Require().NoError(s.repos.Categories.AttachCategories(s.ctx, url1.ID, []uuid.UUID{work.ID, home.ID}))
	s.Require().NoError(s.repos.Categories.AttachCategories(s.ctx, url1.ID, []uuid.UUID{work.ID}))
	s.Require().NoError(s.repos.Categories.AttachCategories(s.ctx, url2.ID, []uuid.UUID{work.ID}))

	err = s.repos.Categories.AttachCategories(s.ctx, uuid.New(), []uuid.UUID{work.ID})
	s.ErrorIs(err, entity.ErrNotFound)

	counts := s.countsByName(owner.ID)
	s.Equal(map[string]int64{"Home": 1, "Work": 2}, counts)

	urls, err := s.repos.Categories.ListURLsByCategory(s.ctx, work.ID)
	s.Require().NoError(err)
	s.Len(urls, 2)

	s.Require().NoError(s.repos.Categories.DetachCategories(s.ctx, url1.ID, []uuid.UUID{work.ID}))
	s.Require().NoError(s.repos.Categories.DetachCategories(s.ctx, url1.ID, []uuid.UUID{work.ID, foreign.ID}))

	counts = s.countsByName(owner.ID)
	s.Equal(map[string]int64{"Home": 1, "Work": 1}, counts)

	s.Require().NoError(s.repos.URLs.DeleteURL(s.ctx, url2.ShortCode))

	counts = s.countsByName(owner.ID)
	s.Equal(map[string]int64{"Home": 1, "Work": 0}, counts)

	s.Require().NoError(s.repos.Categories.DeleteCategory(s.ctx, home.ID))
	s.ErrorIs(s.repos.Categories.DeleteCategory(s.ctx, home.ID), entity.ErrCategoryNotFound)

	_, err = s.repos.URLs.GetURLByCode(s.ctx, url1.ShortCode)
	s.NoError(err)

	list, err := s.repos.Categories.ListCategoriesWithURLCount(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Work", list[0].Name)
}

func (s *Suite) countsByName(owner uuid.UUID) map[string]int64 {
	list, err := s.repos.Categories.ListCategoriesWithURLCount(s.ctx, owner)
	s.Require().NoError(err)

	counts := make(map[string]int64, len(list))
	for i, c := range list {
		if i > 0 {
			s.Less(list[i-1].Name, c.Name, "categories must be ordered by name")
		}
		counts[c.Name] = c.URLCount
	}
	return counts
}

func (s *Suite) TestDeleteUser() {
	owner := s.createUser()
	url := s.createURL(uniqueCode(), &owner.ID)
	cat := s.createCategory(owner.ID, "Work")
	s.Require().NoError(s.repos.Categories.AttachCategories(s.ctx, url.ID, []uuid.UUID{cat.ID}))

	s.Require().NoError(s.repos.Users.DeleteUser(s.ctx, owner.ID))

	got, err := s.repos.URLs.GetURLByCode(s.ctx, url.ShortCode)
	s.Require().NoError(err, "url must survive its owner")
	s.Nil(got.UserID)

	_, err = s.repos.Categories.GetCategory(s.ctx, cat.ID)
	s.ErrorIs(err, entity.ErrCategoryNotFound)

	_, err = s.repos.Users.GetUserByID(s.ctx, owner.ID)
	s.ErrorIs(err, entity.ErrUserNotFound)

	s.ErrorIs(s.repos.Users.DeleteUser(s.ctx, owner.ID), entity.ErrUserNotFound)
}
