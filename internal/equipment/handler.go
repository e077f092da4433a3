// AngelaMos | 2026
// handler.go

package equipment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/driftline/diveadmin/internal/core"
	"github.com/driftline/diveadmin/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/equipment", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{equipmentID}", h.Get)
		r.Put("/{equipmentID}", h.Update)
		r.Delete("/{equipmentID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListEquipmentParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		DiverID:  r.URL.Query().Get("diver_id"),
		Type:     r.URL.Query().Get("type"),
	}

	items, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToEquipmentResponseList(items),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeEquipmentError(w, err)
		return
	}

	core.Created(w, ToEquipmentResponse(e))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	equipmentID := chi.URLParam(r, "equipmentID")

	e, err := h.service.Get(r.Context(), userID, equipmentID)
	if err != nil {
		writeEquipmentError(w, err)
		return
	}

	core.OK(w, ToEquipmentResponse(e))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	equipmentID := chi.URLParam(r, "equipmentID")

	var req UpdateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Update(r.Context(), userID, equipmentID, req)
	if err != nil {
		writeEquipmentError(w, err)
		return
	}

	core.OK(w, ToEquipmentResponse(e))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	equipmentID := chi.URLParam(r, "equipmentID")

	if err := h.service.Delete(r.Context(), userID, equipmentID); err != nil {
		writeEquipmentError(w, err)
		return
	}

	core.NoContent(w)
}

func writeEquipmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		core.UnprocessableEntity(w, "invalid date format")
	case errors.Is(err, ErrDiverNotFound):
		core.NotFound(w, "diver")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "equipment")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "equipment belongs to another user's diver")
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}
