package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type urlHandler struct {
	useCase urlUseCase
}

func newURLHandler(useCase urlUseCase) *urlHandler {
	return &urlHandler{useCase: useCase}
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	url, err := h.useCase.Shorten(r.Context(), req.OriginalURL, userIDFromContext(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toURLResponse(url))
}

func (h *urlHandler) getURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.useCase.GetURL(r.Context(), chi.URLParam(r, "shortCode"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLResponse(url))
}

func (h *urlHandler) updateURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	url, err := h.useCase.Update(r.Context(), chi.URLParam(r, "shortCode"), req.OriginalURL, userIDFromContext(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLResponse(url))
}

func (h *urlHandler) deleteURL(w http.ResponseWriter, r *http.Request) {
	err := h.useCase.Delete(r.Context(), chi.URLParam(r, "shortCode"), userIDFromContext(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *urlHandler) getURLStats(w http.ResponseWriter, r *http.Request) {
	url, err := h.useCase.GetURL(r.Context(), chi.URLParam(r, "shortCode"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLStatsResponse(url))
}

func (h *urlHandler) recordAccess(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	count, err := h.useCase.RecordAccess(r.Context(), shortCode)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, accessResponse{
		ShortCode:   shortCode,
		AccessCount: count,
	})
}

func (h *urlHandler) listURLs(w http.ResponseWriter, r *http.Request) {
	urls, err := h.useCase.ListByOwner(r.Context(), mustUserID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLListResponse(urls))
}

// redirect sends the client to the original URL and counts the access.
func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.useCase.ResolveShortCode(r.Context(), chi.URLParam(r, "shortCode"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	http.Redirect(w, r, url.OriginalURL, http.StatusFound)
}
