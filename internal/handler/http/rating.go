package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxemarket/marketplace/internal/service"
	"github.com/luxemarket/marketplace/pkg/httputil"
	"github.com/luxemarket/marketplace/pkg/middleware"
	"github.com/luxemarket/marketplace/pkg/validator"
)

// RatingHandler handles HTTP requests for rating endpoints.
type RatingHandler struct {
	service *service.RatingService
	logger  *slog.Logger
}

// NewRatingHandler creates a new rating HTTP handler.
func NewRatingHandler(svc *service.RatingService, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitRatingRequest is the JSON request body for submitting a rating.
type SubmitRatingRequest struct {
	OrderID                 string `json:"order_id" validate:"required,uuid"`
	ItemDescriptionAccuracy int    `json:"item_description_accuracy" validate:"required,gte=1,lte=5"`
	CommunicationSupport    int    `json:"communication_support" validate:"required,gte=1,lte=5"`
	DeliverySpeed           int    `json:"delivery_speed" validate:"required,gte=1,lte=5"`
	OverallExperience       int    `json:"overall_experience" validate:"required,gte=1,lte=5"`
	Comment                 string `json:"comment" validate:"max=2000"`
}

// SubmitRating handles POST /api/v1/ratings
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	rating, err := h.service.SubmitRating(r.Context(), userID, &service.RatingInput{
		OrderID:                 req.OrderID,
		ItemDescriptionAccuracy: req.ItemDescriptionAccuracy,
		CommunicationSupport:    req.CommunicationSupport,
		DeliverySpeed:           req.DeliverySpeed,
		OverallExperience:       req.OverallExperience,
		Comment:                 req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: rating})
}

// GetSellerSummary handles GET /api/v1/sellers/{id}/rating
func (h *RatingHandler) GetSellerSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	summary, err := h.service.SellerSummary(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}
