package handlers

import (
	"github.com/route66/trip-service/internal/itinerary"
)

// PlanRequest asks for an itinerary between two cities.
type PlanRequest struct {
	StartCity string `json:"startCity" binding:"required" example:"Chicago, IL"`
	EndCity   string `json:"endCity" binding:"required" example:"Santa Monica, CA"`
	Days      int    `json:"days" binding:"required" example:"7"`
	Style     string `json:"style,omitempty" enums:"relaxed,balanced,adventurous"`
}

// FeasibilityRequest asks whether a day count is workable for a trip.
type FeasibilityRequest struct {
	StartCity string `json:"startCity" binding:"required"`
	EndCity   string `json:"endCity" binding:"required"`
	Days      int    `json:"days" binding:"required"`
}

// CompareRequest plans the same trip for several day counts.
type CompareRequest struct {
	StartCity string `json:"startCity" binding:"required"`
	EndCity   string `json:"endCity" binding:"required"`
	Days      []int  `json:"days" binding:"required,min=1"`
	Style     string `json:"style,omitempty"`
}

// ExportRequest plans a trip and renders it as a downloadable artifact.
type ExportRequest struct {
	PlanRequest
	StartDate string `json:"startDate,omitempty" example:"2026-06-01"` // YYYY-MM-DD, defaults to tomorrow
}

// PlanResponse wraps the optimization result.
type PlanResponse struct {
	RequestID string                        `json:"requestId"`
	Result    *itinerary.OptimizationResult `json:"result"`
}

// CompareResponse lists one result per requested day count.
type CompareResponse struct {
	RequestID string                         `json:"requestId"`
	Results   []itinerary.DayCountComparison `json:"results"`
}

// StopsResponse lists the current stop pool.
type StopsResponse struct {
	Stops []itinerary.Stop `json:"stops"`
	Total int              `json:"total"`
}

// RefreshResponse reports the size of the reloaded stop pool.
type RefreshResponse struct {
	Loaded int `json:"loaded"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}
