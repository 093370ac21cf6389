package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"github.com/vadimbarashkov/shortlinks/internal/usecase"
)

type categoryHandler struct {
	useCase categoryUseCase
}

func newCategoryHandler(useCase categoryUseCase) *categoryHandler {
	return &categoryHandler{useCase: useCase}
}

// categoryID parses the categoryID path parameter. On failure it writes the
// error response and returns false.
func categoryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		renderError(w, r, entity.NewValidationError([]entity.Violation{
			{Field: "category_id", Message: "must be a valid uuid"},
		}))
		return uuid.Nil, false
	}
	return id, true
}

func (h *categoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req usecase.CategoryInput
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.useCase.Create(r.Context(), mustUserID(r), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toCategoryResponse(c))
}

func (h *categoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.useCase.ListWithCounts(r.Context(), mustUserID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toCategoryListResponse(categories))
}

func (h *categoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	c, err := h.useCase.Get(r.Context(), id, mustUserID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toCategoryResponse(c))
}

func (h *categoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req usecase.CategoryInput
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.useCase.Update(r.Context(), id, mustUserID(r), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toCategoryResponse(c))
}

func (h *categoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Delete(r.Context(), id, mustUserID(r)); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *categoryHandler) listCategoryURLs(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	urls, err := h.useCase.ListURLs(r.Context(), id, mustUserID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLListResponse(urls))
}

func (h *categoryHandler) attachCategories(w http.ResponseWriter, r *http.Request) {
	var req categoryIDsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.useCase.AttachCategories(r.Context(), chi.URLParam(r, "shortCode"), req.CategoryIDs, mustUserID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *categoryHandler) detachCategories(w http.ResponseWriter, r *http.Request) {
	var req categoryIDsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.useCase.DetachCategories(r.Context(), chi.URLParam(r, "shortCode"), req.CategoryIDs, mustUserID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
