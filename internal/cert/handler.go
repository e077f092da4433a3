// AngelaMos | 2026
// handler.go

package cert

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
	r.Route("/certifications", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{certID}", h.Get)
		r.Put("/{certID}", h.Update)
		r.Delete("/{certID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListCertificationsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		DiverID:  r.URL.Query().Get("diver_id"),
	}

	certs, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToCertificationResponseList(certs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateCertificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeCertError(w, err)
		return
	}

	core.Created(w, ToCertificationResponse(c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	certID := chi.URLParam(r, "certID")

	c, err := h.service.Get(r.Context(), userID, certID)
	if err != nil {
		writeCertError(w, err)
		return
	}

	core.OK(w, ToCertificationResponse(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	certID := chi.URLParam(r, "certID")

	var req UpdateCertificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Update(r.Context(), userID, certID, req)
	if err != nil {
		writeCertError(w, err)
		return
	}

	core.OK(w, ToCertificationResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	certID := chi.URLParam(r, "certID")

	if err := h.service.Delete(r.Context(), userID, certID); err != nil {
		writeCertError(w, err)
		return
	}

	core.NoContent(w)
}

func writeCertError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		core.UnprocessableEntity(w, "invalid certification dates")
	case errors.Is(err, ErrDiverNotFound):
		core.NotFound(w, "diver")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "certification")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "certification belongs to another user's diver")
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
