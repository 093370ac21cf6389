package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecoverer(t *testing.T) {
	logger := httplog.NewLogger("", httplog.Options{Writer: io.Discard})

	h := httplog.RequestLogger(logger)(recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	server := httptest.NewServer(h)
	defer server.Close()

	resp := httpexpect.Default(t, server.URL).GET("/").
		Expect().
		Status(http.StatusInternalServerError).
		JSON().Object()

	resp.HasValue("status", "error")
	resp.HasValue("kind", "Unknown")
	resp.HasValue("message", serverErrorMessage)
}

func TestUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, userIDFromContext(req.Context()))

	var got *uuid.UUID
	id := uuid.New()

	h := authenticate(staticParser(id))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = userIDFromContext(r.Context())
	}))

	req.Header.Set("Authorization", "bearer token")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if assert.NotNil(t, got) {
		assert.Equal(t, id, *got)
	}
}

type staticParser uuid.UUID

func (p staticParser) Parse(string) (uuid.UUID, error) {
	return uuid.UUID(p), nil
}
