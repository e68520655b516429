package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/route66/trip-service/internal/directory"
	"github.com/route66/trip-service/internal/itinerary"
	"github.com/route66/trip-service/internal/middleware"
)

// statusFor maps planning errors to HTTP status codes.
func statusFor(err error) int {
	var invalid itinerary.ErrInvalidRequest
	switch {
	case errors.Is(err, itinerary.ErrUnresolvedCity):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, itinerary.ErrEmptyStopPool):
		return http.StatusUnprocessableEntity
	case errors.Is(err, directory.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *TripHandler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)}

	var invalid itinerary.ErrInvalidRequest
	if errors.As(err, &invalid) {
		resp.Field = invalid.Field
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("request_id", resp.RequestID).Msg("Request failed")
		if status == http.StatusInternalServerError {
			resp.Error = "internal error"
		}
	}
	c.JSON(status, resp)
}

func (h *TripHandler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)})
}
