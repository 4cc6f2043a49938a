// Package rest provides the HTTP handlers for the SneakerHub API.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	ordererrors "github.com/avlasov/sneakerhub/internal/order/errors"
	"github.com/avlasov/sneakerhub/internal/order/service"
	"github.com/avlasov/sneakerhub/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// OrderHandler serves the order lifecycle and query endpoints.
type OrderHandler struct {
	service  service.OrderService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewOrderHandler(service service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the order routes behind the given auth middleware,
// plus the unauthenticated health check.
func (h *OrderHandler) RegisterRoutes(r *chi.Mux, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", h.ListActive)
			r.Post("/", h.Create)
			r.Get("/history", h.ListHistory)

			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", h.FindByID)
				r.Patch("/status", h.UpdateStatus)
				r.Delete("/", h.Cancel)
			})
		})
	})
	r.Get("/api/health", h.HealthCheck)
}

// ListActive returns the caller's non-cancelled orders, newest first.
func (h *OrderHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}

	orders, err := h.service.ListActive(r.Context(), userID)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error fetching orders", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{"orders": orders})
}

// ListHistory returns the caller's complete order history, cancelled orders
// included.
func (h *OrderHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}

	orders, err := h.service.ListHistory(r.Context(), userID)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error fetching order history", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch order history")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{"orders": orders})
}

// FindByID returns one order aggregate owned by the caller.
func (h *OrderHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderId")

	order, err := h.service.FindByID(r.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, ordererrors.ErrOrderNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, "Order not found")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error fetching order", "order_id", orderID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{"order": order})
}

// Create places a new order for the caller.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}

	var dto service.OrderCreateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, createValidationMessage(err))
		return
	}

	created, err := h.service.Create(r.Context(), userID, dto)
	if err != nil {
		if errors.Is(err, ordererrors.ErrTotalMismatch) {
			web.RespondError(w, mLogger, http.StatusBadRequest, "Total amount does not match order items")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating order", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create order")
		return
	}

	mLogger.InfoContext(r.Context(), "Order placed", "order_id", created.OrderID)
	web.RespondJSON(w, mLogger, http.StatusCreated, struct {
		Message string `json:"message"`
		*service.OrderCreatedDto
	}{"Order placed successfully", created})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus is the administrative transition endpoint: any valid status
// can be forced regardless of the current one. Contrast with Cancel, which
// validates the lifecycle rule.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	if _, ok := web.GetUserID(w, r, mLogger); !ok {
		return
	}
	orderID := chi.URLParam(r, "orderId")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		if errors.Is(err, ordererrors.ErrInvalidStatus) {
			web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid status")
			return
		}
		if errors.Is(err, ordererrors.ErrOrderNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, "Order not found")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating order status", "order_id", orderID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	mLogger.InfoContext(r.Context(), "Order status updated", "order_id", orderID, "status", updated.Status)
	web.RespondJSON(w, mLogger, http.StatusOK, struct {
		Message string `json:"message"`
		*service.StatusUpdateDto
	}{"Order status updated successfully", updated})
}

// Cancel is the user-initiated transition endpoint, restricted to orders the
// caller owns that are still Processing. The row is kept, never deleted.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "orderId")

	cancelled, err := h.service.Cancel(r.Context(), orderID, userID)
	if err != nil {
		var transitionErr *ordererrors.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf(
				"Cannot cancel order. Only orders in \"Processing\" status can be cancelled. Current status: %s",
				transitionErr.CurrentStatus))
			return
		}
		if errors.Is(err, ordererrors.ErrOrderNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, "Order not found")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error cancelling order", "order_id", orderID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	mLogger.InfoContext(r.Context(), "Order cancelled", "order_id", orderID)
	web.RespondJSON(w, mLogger, http.StatusOK, struct {
		Message string `json:"message"`
		*service.CancelDto
	}{"Order cancelled successfully", cancelled})
}

// HealthCheck reports service liveness.
func (h *OrderHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "SneakerHub API is running",
	})
}

// createValidationMessage maps a create-order validation failure to the
// API's short error messages.
func createValidationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request body"
	}
	for _, fieldErr := range validationErrors {
		ns := fieldErr.Namespace()
		switch {
		case strings.Contains(ns, "ShippingAddress"):
			return "Complete shipping address is required"
		case strings.Contains(ns, "Items["):
			return "Each item requires name, size, price and quantity"
		case strings.Contains(ns, "Items"):
			return "Order must contain at least one item"
		case strings.Contains(ns, "TotalAmount"):
			return "Valid total amount is required"
		}
	}
	return "Invalid request body"
}

func (h *OrderHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
