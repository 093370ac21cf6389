package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"github.com/vadimbarashkov/shortlinks/internal/usecase"

	httpMock "github.com/vadimbarashkov/shortlinks/mocks/http"
)

type HandlersTestSuite struct {
	suite.Suite
	logger              *httplog.Logger
	userID              uuid.UUID
	categoryID          uuid.UUID
	urlUseCaseMock      *httpMock.MockUrlUseCase
	categoryUseCaseMock *httpMock.MockCategoryUseCase
	authUseCaseMock     *httpMock.MockAuthUseCase
	tokenParserMock     *httpMock.MockTokenParser
	server              *httptest.Server
	e                   *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
	suite.userID = uuid.New()
	suite.categoryID = uuid.New()
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.urlUseCaseMock = httpMock.NewMockUrlUseCase(suite.T())
	suite.categoryUseCaseMock = httpMock.NewMockCategoryUseCase(suite.T())
	suite.authUseCaseMock = httpMock.NewMockAuthUseCase(suite.T())
	suite.tokenParserMock = httpMock.NewMockTokenParser(suite.T())

	router := NewRouter(
		suite.logger,
		suite.urlUseCaseMock,
		suite.categoryUseCaseMock,
		suite.authUseCaseMock,
		suite.tokenParserMock,
	)
	suite.server = httptest.NewServer(router)
	suite.T().Cleanup(func() {
		suite.server.Close()
	})

	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.urlUseCaseMock.AssertExpectations(suite.T())
	suite.categoryUseCaseMock.AssertExpectations(suite.T())
	suite.authUseCaseMock.AssertExpectations(suite.T())
	suite.tokenParserMock.AssertExpectations(suite.T())
}

// authorized makes req carry a token that resolves to suite.userID.
func (suite *HandlersTestSuite) authorized(req *httpexpect.Request) *httpexpect.Request {
	suite.tokenParserMock.
		On("Parse", "valid-token").
		Once().
		Return(suite.userID, nil)

	return req.WithHeader("Authorization", "Bearer valid-token")
}

func (suite *HandlersTestSuite) isUser(id *uuid.UUID) bool {
	return id != nil && *id == suite.userID
}

func (suite *HandlersTestSuite) url() *entity.URL {
	now := time.Now()
	return &entity.URL{
		ID:          uuid.New(),
		ShortCode:   "abc123",
		OriginalURL: "https://example.com",
		URLStats:    entity.URLStats{AccessCount: 7},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (suite *HandlersTestSuite) TestPing() {
	const path = "/api/v1/ping"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("pong")
	})
}

func (suite *HandlersTestSuite) TestAuthentication() {
	const path = "/api/v1/urls"

	suite.Run("missing token", func() {
		resp := suite.e.GET(path).
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("kind", "Unauthorized")
	})

	suite.Run("wrong scheme", func() {
		resp := suite.e.GET(path).
			WithHeader("Authorization", "Basic dXNlcjpwYXNz").
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object()

		resp.HasValue("kind", "Unauthorized")
	})

	suite.Run("invalid token", func() {
		suite.tokenParserMock.
			On("Parse", "bad-token").
			Once().
			Return(uuid.Nil, errors.New("token is malformed"))

		resp := suite.e.GET(path).
			WithHeader("Authorization", "Bearer bad-token").
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object()

		resp.HasValue("kind", "Unauthorized")
	})

	suite.Run("invalid token on optional route", func() {
		suite.tokenParserMock.
			On("Parse", "bad-token").
			Once().
			Return(uuid.Nil, errors.New("token is expired"))

		suite.e.POST("/api/v1/shorten").
			WithHeader("Authorization", "Bearer bad-token").
			WithJSON(map[string]string{"original_url": "https://example.com"}).
			Expect().
			Status(http.StatusUnauthorized)
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("ListByOwner", mock.Anything, suite.userID).
			Once().
			Return([]entity.URL{*suite.url()}, nil)

		resp := suite.authorized(suite.e.GET(path)).
			Expect().
			Status(http.StatusOK).
			JSON().Array()

		resp.Length().IsEqual(1)
		resp.Value(0).Object().HasValue("short_code", "abc123")
	})
}

func (suite *HandlersTestSuite) TestShortenURL() {
	const path = "/api/v1/shorten"

	suite.Run("empty request body", func() {
		resp := suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("message", "empty request body")
	})

	suite.Run("invalid request body", func() {
		resp := suite.e.POST(path).
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("message", "invalid request body")
	})

	suite.Run("validation error", func() {
		suite.urlUseCaseMock.
			On("Shorten", mock.Anything, "ftp://example", (*uuid.UUID)(nil)).
			Once().
			Return(nil, entity.NewValidationError([]entity.Violation{
				{Field: "original_url", Message: "scheme must be http or https"},
				{Field: "original_url", Message: "must have a host"},
			}))

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"original_url": "ftp://example"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("kind", "ValidationFailed")
		resp.Value("errors").Array().Length().IsEqual(2)
		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "original_url").
			ContainsKey("message")
	})

	suite.Run("code space exhausted", func() {
		suite.urlUseCaseMock.
			On("Shorten", mock.Anything, "https://example.com", (*uuid.UUID)(nil)).
			Once().
			Return(nil, fmt.Errorf("usecase.URLUseCase.Shorten: %w", entity.ErrCodeSpaceExhausted))

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"original_url": "https://example.com"}).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("kind", "CodeSpaceExhausted")
		resp.HasValue("message", serverErrorMessage)
	})

	suite.Run("anonymous success", func() {
		suite.urlUseCaseMock.
			On("Shorten", mock.Anything, "https://example.com", (*uuid.UUID)(nil)).
			Once().
			Return(suite.url(), nil)

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"original_url": "https://example.com"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.ContainsKey("id")
		resp.HasValue("short_code", "abc123")
		resp.HasValue("original_url", "https://example.com")
		resp.NotContainsKey("user_id")
		resp.NotContainsKey("stats")
		resp.ContainsKey("created_at")
		resp.ContainsKey("updated_at")
	})

	suite.Run("owned success", func() {
		url := suite.url()
		url.UserID = &suite.userID

		suite.urlUseCaseMock.
			On("Shorten", mock.Anything, "https://example.com", mock.MatchedBy(suite.isUser)).
			Once().
			Return(url, nil)

		resp := suite.authorized(suite.e.POST(path)).
			WithJSON(map[string]string{"original_url": "https://example.com"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("user_id", suite.userID.String())
	})
}

func (suite *HandlersTestSuite) TestGetURL() {
	const path = "/api/v1/shorten/%s"

	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("GetURL", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("kind", "NotFound")
		resp.HasValue("message", "url not found")
	})

	suite.Run("storage unavailable", func() {
		suite.urlUseCaseMock.
			On("GetURL", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrStorageUnavailable)

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("kind", "StorageUnavailable")
	})

	suite.Run("server error", func() {
		suite.urlUseCaseMock.
			On("GetURL", mock.Anything, "abc123").
			Once().
			Return(nil, errors.New("unknown error"))

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("kind", "Unknown")
		resp.HasValue("message", serverErrorMessage)
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("GetURL", mock.Anything, "abc123").
			Once().
			Return(suite.url(), nil)

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("short_code", "abc123")
		resp.NotContainsKey("stats")
	})
}

func (suite *HandlersTestSuite) TestUpdateURL() {
	const path = "/api/v1/shorten/%s"

	suite.Run("empty request body", func() {
		suite.e.PUT(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("message", "empty request body")
	})

	suite.Run("forbidden", func() {
		suite.urlUseCaseMock.
			On("Update", mock.Anything, "abc123", "https://new-example.com", (*uuid.UUID)(nil)).
			Once().
			Return(nil, entity.ErrForbidden)

		resp := suite.e.PUT(fmt.Sprintf(path, "abc123")).
			WithJSON(map[string]string{"original_url": "https://new-example.com"}).
			Expect().
			Status(http.StatusForbidden).
			JSON().Object()

		resp.HasValue("kind", "Forbidden")
	})

	suite.Run("success", func() {
		url := suite.url()
		url.OriginalURL = "https://new-example.com"

		suite.urlUseCaseMock.
			On("Update", mock.Anything, "abc123", "https://new-example.com", mock.MatchedBy(suite.isUser)).
			Once().
			Return(url, nil)

		resp := suite.authorized(suite.e.PUT(fmt.Sprintf(path, "abc123"))).
			WithJSON(map[string]string{"original_url": "https://new-example.com"}).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("original_url", "https://new-example.com")
	})
}

func (suite *HandlersTestSuite) TestDeleteURL() {
	const path = "/api/v1/shorten/%s"

	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("Delete", mock.Anything, "abc123", (*uuid.UUID)(nil)).
			Once().
			Return(entity.ErrURLNotFound)

		suite.e.DELETE(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("Delete", mock.Anything, "abc123", (*uuid.UUID)(nil)).
			Once().
			Return(nil)

		suite.e.DELETE(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusNoContent).
			NoContent()
	})
}

func (suite *HandlersTestSuite) TestGetURLStats() {
	const path = "/api/v1/shorten/%s/stats"

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("GetURL", mock.Anything, "abc123").
			Once().
			Return(suite.url(), nil)

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("short_code", "abc123")
		resp.Value("stats").Object().HasValue("access_count", 7)
	})
}

func (suite *HandlersTestSuite) TestRecordAccess() {
	const path = "/api/v1/shorten/%s/access"

	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("RecordAccess", mock.Anything, "abc123").
			Once().
			Return(int64(0), entity.ErrURLNotFound)

		suite.e.POST(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("RecordAccess", mock.Anything, "abc123").
			Once().
			Return(int64(4), nil)

		resp := suite.e.POST(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("short_code", "abc123")
		resp.HasValue("access_count", 4)
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)

		suite.e.GET("/abc123").
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc123").
			Once().
			Return(suite.url(), nil)

		suite.e.GET("/abc123").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com")
	})
}

func (suite *HandlersTestSuite) TestRegister() {
	const path = "/api/v1/auth/register"

	suite.Run("email exists", func() {
		suite.authUseCaseMock.
			On("Register", mock.Anything, "user@example.com", "password123").
			Once().
			Return(nil, entity.ErrEmailExists)

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"email": "user@example.com", "password": "password123"}).
			Expect().
			Status(http.StatusConflict).
			JSON().Object()

		resp.HasValue("kind", "DuplicateEmail")
	})

	suite.Run("success", func() {
		suite.authUseCaseMock.
			On("Register", mock.Anything, "user@example.com", "password123").
			Once().
			Return(&entity.User{ID: suite.userID, Email: "user@example.com", PasswordHash: "hash"}, nil)

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"email": "user@example.com", "password": "password123"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("id", suite.userID.String())
		resp.HasValue("email", "user@example.com")
		resp.NotContainsKey("password_hash")
	})
}

func (suite *HandlersTestSuite) TestLogin() {
	const path = "/api/v1/auth/login"

	suite.Run("invalid credentials", func() {
		suite.authUseCaseMock.
			On("Login", mock.Anything, "user@example.com", "wrong").
			Once().
			Return("", entity.ErrInvalidCredentials)

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"email": "user@example.com", "password": "wrong"}).
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object()

		resp.HasValue("kind", "Unauthorized")
		resp.HasValue("message", entity.ErrInvalidCredentials.Error())
	})

	suite.Run("success", func() {
		suite.authUseCaseMock.
			On("Login", mock.Anything, "user@example.com", "password123").
			Once().
			Return("jwt", nil)

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"email": "user@example.com", "password": "password123"}).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("access_token", "jwt")
		resp.HasValue("token_type", "Bearer")
	})
}

func (suite *HandlersTestSuite) TestMe() {
	const path = "/api/v1/auth/me"

	suite.Run("unauthorized", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusUnauthorized)
	})

	suite.Run("success", func() {
		suite.authUseCaseMock.
			On("Me", mock.Anything, suite.userID).
			Once().
			Return(&entity.User{ID: suite.userID, Email: "user@example.com"}, nil)

		suite.authorized(suite.e.GET(path)).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("email", "user@example.com")
	})

	suite.Run("delete account", func() {
		suite.authUseCaseMock.
			On("DeleteAccount", mock.Anything, suite.userID).
			Once().
			Return(nil)

		suite.authorized(suite.e.DELETE(path)).
			Expect().
			Status(http.StatusNoContent)
	})
}

func (suite *HandlersTestSuite) TestCategories() {
	const (
		path     = "/api/v1/categories"
		itemPath = "/api/v1/categories/%s"
	)

	category := &entity.Category{
		ID:     suite.categoryID,
		UserID: suite.userID,
		Name:   "Work",
		Icon:   entity.DefaultCategoryIcon,
		Color:  entity.DefaultCategoryColor,
	}

	suite.Run("create", func() {
		suite.categoryUseCaseMock.
			On("Create", mock.Anything, suite.userID, usecase.CategoryInput{Name: "Work"}).
			Once().
			Return(category, nil)

		resp := suite.authorized(suite.e.POST(path)).
			WithJSON(map[string]string{"name": "Work"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("id", suite.categoryID.String())
		resp.HasValue("icon", entity.DefaultCategoryIcon)
		resp.HasValue("color", entity.DefaultCategoryColor)
	})

	suite.Run("duplicate name", func() {
		suite.categoryUseCaseMock.
			On("Create", mock.Anything, suite.userID, usecase.CategoryInput{Name: "Work"}).
			Once().
			Return(nil, entity.ErrCategoryExists)

		suite.authorized(suite.e.POST(path)).
			WithJSON(map[string]string{"name": "Work"}).
			Expect().
			Status(http.StatusConflict).
			JSON().Object().
			HasValue("kind", "DuplicateName")
	})

	suite.Run("list with counts", func() {
		suite.categoryUseCaseMock.
			On("ListWithCounts", mock.Anything, suite.userID).
			Once().
			Return([]entity.CategoryWithCount{{Category: *category, URLCount: 2}}, nil)

		resp := suite.authorized(suite.e.GET(path)).
			Expect().
			Status(http.StatusOK).
			JSON().Array()

		resp.Length().IsEqual(1)
		resp.Value(0).Object().HasValue("name", "Work")
		resp.Value(0).Object().HasValue("url_count", 2)
	})

	suite.Run("invalid category id", func() {
		resp := suite.authorized(suite.e.GET(fmt.Sprintf(itemPath, "not-a-uuid"))).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.Value("errors").Array().Value(0).Object().HasValue("field", "category_id")
	})

	suite.Run("forbidden", func() {
		suite.categoryUseCaseMock.
			On("Get", mock.Anything, suite.categoryID, suite.userID).
			Once().
			Return(nil, entity.ErrForbidden)

		suite.authorized(suite.e.GET(fmt.Sprintf(itemPath, suite.categoryID))).
			Expect().
			Status(http.StatusForbidden)
	})

	suite.Run("update", func() {
		suite.categoryUseCaseMock.
			On("Update", mock.Anything, suite.categoryID, suite.userID, usecase.CategoryInput{Name: "Home", Icon: "house"}).
			Once().
			Return(&entity.Category{ID: suite.categoryID, Name: "Home", Icon: "house"}, nil)

		suite.authorized(suite.e.PUT(fmt.Sprintf(itemPath, suite.categoryID))).
			WithJSON(map[string]string{"name": "Home", "icon": "house"}).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("name", "Home")
	})

	suite.Run("delete", func() {
		suite.categoryUseCaseMock.
			On("Delete", mock.Anything, suite.categoryID, suite.userID).
			Once().
			Return(entity.ErrCategoryNotFound)

		suite.authorized(suite.e.DELETE(fmt.Sprintf(itemPath, suite.categoryID))).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("message", entity.ErrCategoryNotFound.Error())
	})

	suite.Run("list urls", func() {
		suite.categoryUseCaseMock.
			On("ListURLs", mock.Anything, suite.categoryID, suite.userID).
			Once().
			Return([]entity.URL{*suite.url()}, nil)

		suite.authorized(suite.e.GET(fmt.Sprintf(itemPath+"/urls", suite.categoryID))).
			Expect().
			Status(http.StatusOK).
			JSON().Array().
			Length().IsEqual(1)
	})
}

func (suite *HandlersTestSuite) TestURLCategories() {
	const path = "/api/v1/shorten/abc123/categories"

	suite.Run("unauthorized", func() {
		suite.e.POST(path).
			WithJSON(map[string][]string{"category_ids": {suite.categoryID.String()}}).
			Expect().
			Status(http.StatusUnauthorized)
	})

	suite.Run("malformed category id", func() {
		suite.authorized(suite.e.POST(path)).
			WithJSON(map[string][]string{"category_ids": {"not-a-uuid"}}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("message", "invalid request body")
	})

	suite.Run("attach forbidden", func() {
		suite.categoryUseCaseMock.
			On("AttachCategories", mock.Anything, "abc123", []uuid.UUID{suite.categoryID}, suite.userID).
			Once().
			Return(entity.ErrForbidden)

		suite.authorized(suite.e.POST(path)).
			WithJSON(map[string][]string{"category_ids": {suite.categoryID.String()}}).
			Expect().
			Status(http.StatusForbidden)
	})

	suite.Run("attach", func() {
		suite.categoryUseCaseMock.
			On("AttachCategories", mock.Anything, "abc123", []uuid.UUID{suite.categoryID}, suite.userID).
			Once().
			Return(nil)

		suite.authorized(suite.e.POST(path)).
			WithJSON(map[string][]string{"category_ids": {suite.categoryID.String()}}).
			Expect().
			Status(http.StatusNoContent)
	})

	suite.Run("detach", func() {
		suite.categoryUseCaseMock.
			On("DetachCategories", mock.Anything, "abc123", []uuid.UUID{suite.categoryID}, suite.userID).
			Once().
			Return(nil)

		suite.authorized(suite.e.DELETE(path)).
			WithJSON(map[string][]string{"category_ids": {suite.categoryID.String()}}).
			Expect().
			Status(http.StatusNoContent)
	})
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
