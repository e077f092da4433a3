// AngelaMos | 2026
// handler.go

package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/driftline/diveadmin/internal/core"
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

// RegisterRoutes mounts site endpoints. Reads are open to any authenticated
// user; writes additionally pass through adminOnly so non-admins get an
// explicit 403 rather than a silent no-op.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/dive-sites", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/{siteID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{siteID}", h.Update)
			r.Delete("/{siteID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListSitesParams{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 20),
		Search:     r.URL.Query().Get("search"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}

	sites, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToSiteResponseList(sites),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	site, err := h.service.Get(r.Context(), siteID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dive site")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSiteResponse(site))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	site, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			core.JSONError(w, core.DuplicateError("name"))
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.UnprocessableEntity(w, "depth_min must not exceed depth_max")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToSiteResponse(site))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	var req UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	site, err := h.service.Update(r.Context(), siteID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dive site")
			return
		}
		if errors.Is(err, ErrNameTaken) {
			core.JSONError(w, core.DuplicateError("name"))
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.UnprocessableEntity(w, "depth_min must not exceed depth_max")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSiteResponse(site))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	if err := h.service.Delete(r.Context(), siteID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dive site")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.JSONError(w, core.NewAppError(
				core.ErrInvalidInput,
				"site has logged dives and cannot be deleted",
				http.StatusConflict,
				"SITE_IN_USE",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
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
