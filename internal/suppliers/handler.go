package suppliers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vendata/vendata/internal/platform/httpx"
	"github.com/vendata/vendata/internal/shared"
	"github.com/vendata/vendata/internal/taxid"
)

// Handler wires the supplier HTTP endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers the supplier routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type supplierRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	TaxID   string `json:"tax_id" validate:"required"`
	Contact string `json:"contact" validate:"omitempty,max=255"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

// List serves one page of suppliers, from the cache when fresh.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	q := ListQuery{
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
		Page:      page,
	}

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		h.logger.Error("list suppliers", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "Failed to retrieve the supplier list.")
		return
	}

	httpx.OK(w, "Supplier list retrieved successfully.", result)
}

// Create registers a new supplier after field and tax-id validation.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return
	}
	if msg, ok := h.validateFields(req); !ok {
		httpx.Fail(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.service.Create(r.Context(), Supplier{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Contact: req.Contact,
		Address: req.Address,
	})
	if err != nil {
		var verr *taxid.ValidationError
		switch {
		case errors.As(err, &verr):
			httpx.Fail(w, http.StatusUnprocessableEntity, verr.Reason)
		case errors.Is(err, shared.ErrDuplicate):
			httpx.Fail(w, http.StatusUnprocessableEntity, "Supplier already registered.")
		default:
			h.logger.Error("create supplier", slog.Any("error", err))
			httpx.Fail(w, http.StatusInternalServerError, "Failed to register the supplier.")
		}
		return
	}

	httpx.Created(w, "Supplier registered successfully.", created)
}

// Update replaces the full field set of an existing supplier.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusNotFound, "Supplier not found.")
		return
	}

	if _, err := h.service.Get(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Supplier not found.")
			return
		}
		h.logger.Error("get supplier", slog.Any("error", err), slog.Int64("id", id))
		httpx.Fail(w, http.StatusInternalServerError, "Failed to update the supplier.")
		return
	}

	var req supplierRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return
	}
	if msg, ok := h.validateFields(req); !ok {
		httpx.Fail(w, http.StatusUnprocessableEntity, msg)
		return
	}

	updated, err := h.service.Update(r.Context(), id, Supplier{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Contact: req.Contact,
		Address: req.Address,
	})
	if err != nil {
		var verr *taxid.ValidationError
		switch {
		case errors.As(err, &verr):
			httpx.Fail(w, http.StatusUnprocessableEntity, verr.Reason)
		case errors.Is(err, shared.ErrDuplicate):
			httpx.Fail(w, http.StatusUnprocessableEntity, "The CPF or CNPJ is already in use by another supplier.")
		case errors.Is(err, shared.ErrNotFound):
			httpx.Fail(w, http.StatusNotFound, "Supplier not found.")
		default:
			h.logger.Error("update supplier", slog.Any("error", err), slog.Int64("id", id))
			httpx.Fail(w, http.StatusInternalServerError, "Failed to update the supplier.")
		}
		return
	}

	httpx.OK(w, "Supplier updated successfully.", updated)
}

// Delete removes a supplier by id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusNotFound, "Supplier not found.")
		return
	}

	if _, err := h.service.Get(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Supplier not found.")
			return
		}
		h.logger.Error("get supplier", slog.Any("error", err), slog.Int64("id", id))
		httpx.Fail(w, http.StatusInternalServerError, "Failed to delete the supplier.")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Supplier not found.")
			return
		}
		h.logger.Error("delete supplier", slog.Any("error", err), slog.Int64("id", id))
		httpx.Fail(w, http.StatusInternalServerError, "Failed to delete the supplier.")
		return
	}

	httpx.OK(w, "Supplier deleted successfully.", nil)
}

// validateFields checks the declarative constraints and renders the
// first violation as a user-facing message.
func (h *Handler) validateFields(req supplierRequest) (string, bool) {
	err := h.validator.Struct(req)
	if err == nil {
		return "", true
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation failed.", false
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field), false
	case "max":
		return fmt.Sprintf("The %s field must not exceed %s characters.", field, fe.Param()), false
	default:
		return fmt.Sprintf("The %s field is invalid.", field), false
	}
}
