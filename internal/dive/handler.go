// AngelaMos | 2026
// handler.go

package dive

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
	r.Route("/dives", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{diveID}", h.Get)
		r.Put("/{diveID}", h.Update)
		r.Delete("/{diveID}", h.Delete)
		r.Post("/{diveID}/divers", h.AttachDivers)
		r.Delete("/{diveID}/divers/{diverID}", h.DetachDiver)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListDivesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		SiteID:   r.URL.Query().Get("site_id"),
	}

	dives, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToDiveResponseList(dives),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateDiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	detail, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeDiveError(w, err)
		return
	}

	core.Created(w, detail)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	diveID := chi.URLParam(r, "diveID")

	detail, err := h.service.Get(r.Context(), userID, diveID)
	if err != nil {
		writeDiveError(w, err)
		return
	}

	core.OK(w, detail)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	diveID := chi.URLParam(r, "diveID")

	var req UpdateDiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	d, err := h.service.Update(r.Context(), userID, diveID, req)
	if err != nil {
		writeDiveError(w, err)
		return
	}

	core.OK(w, ToDiveResponse(d))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	diveID := chi.URLParam(r, "diveID")

	if err := h.service.Delete(r.Context(), userID, diveID); err != nil {
		writeDiveError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AttachDivers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	diveID := chi.URLParam(r, "diveID")

	var req AttachDiversRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	participants, err := h.service.AttachDivers(
		r.Context(),
		userID,
		diveID,
		req.DiverIDs,
	)
	if err != nil {
		writeDiveError(w, err)
		return
	}

	core.OK(w, participants)
}

func (h *Handler) DetachDiver(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	diveID := chi.URLParam(r, "diveID")
	diverID := chi.URLParam(r, "diverID")

	participants, err := h.service.DetachDiver(
		r.Context(),
		userID,
		diveID,
		diverID,
	)
	if err != nil {
		writeDiveError(w, err)
		return
	}

	core.OK(w, participants)
}

func writeDiveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSiteNotFound):
		core.UnprocessableEntity(w, "dive site does not exist")
	case errors.Is(err, core.ErrInvalidInput):
		core.UnprocessableEntity(w, "invalid dive date format")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "dive")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "none of your divers participated in this dive")
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
