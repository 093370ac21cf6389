package http

import (
	"net/http"

	"github.com/go-chi/render"
)

type authHandler struct {
	useCase authUseCase
}

func newAuthHandler(useCase authUseCase) *authHandler {
	return &authHandler{useCase: useCase}
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.useCase.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(u))
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.useCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

func (h *authHandler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.useCase.Me(r.Context(), mustUserID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toUserResponse(u))
}

func (h *authHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.useCase.DeleteAccount(r.Context(), mustUserID(r)); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
