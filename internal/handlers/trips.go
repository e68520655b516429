package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/route66/trip-service/internal/export"
	"github.com/route66/trip-service/internal/itinerary"
	"github.com/route66/trip-service/internal/middleware"
	"github.com/route66/trip-service/internal/telemetry"
)

// Refresher reloads the stop pool on demand.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// TripHandler serves the planning endpoints.
type TripHandler struct {
	builder   *itinerary.Builder
	directory itinerary.StopDirectory
	refresher Refresher
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewTripHandler creates the planning handlers. refresher may be nil.
func NewTripHandler(builder *itinerary.Builder, dir itinerary.StopDirectory, refresher Refresher, timeout time.Duration) *TripHandler {
	return &TripHandler{
		builder:   builder,
		directory: dir,
		refresher: refresher,
		timeout:   timeout,
		logger:    log.With().Str("component", "trip_handler").Logger(),
	}
}

// Register mounts the public API under api and the admin endpoints under internal.
func (h *TripHandler) Register(api, internal *gin.RouterGroup) {
	api.GET("/stops", h.ListStops)

	trips := api.Group("/trips")
	{
		trips.POST("/plan", h.PlanTrip)
		trips.POST("/feasibility", h.CheckFeasibility)
		trips.POST("/compare", h.CompareDayCounts)
		trips.POST("/export/:format", h.ExportTrip)
	}

	if internal != nil {
		internal.POST("/directory/refresh", h.RefreshDirectory)
	}
}

// ListStops godoc
// @Summary      List stops
// @Description  Returns the current stop pool, optionally filtered by category
// @Tags         stops
// @Produce      json
// @Param        category  query     string  false  "destination, attraction, waypoint or hidden_gem"
// @Success      200       {object}  StopsResponse
// @Failure      503       {object}  ErrorResponse
// @Router       /api/stops [get]
func (h *TripHandler) ListStops(c *gin.Context) {
	stops, err := h.directory.ListStops(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	if category := c.Query("category"); category != "" {
		cat := itinerary.StopCategory(category)
		if !cat.Valid() {
			h.respondError(c, itinerary.ErrInvalidRequest{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)})
			return
		}
		filtered := make([]itinerary.Stop, 0, len(stops))
		for _, s := range stops {
			if s.Category == cat {
				filtered = append(filtered, s)
			}
		}
		stops = filtered
	}

	c.JSON(http.StatusOK, StopsResponse{Stops: stops, Total: len(stops)})
}

// PlanTrip godoc
// @Summary      Plan a trip
// @Description  Builds a day-by-day itinerary with balanced drive times
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request  body      PlanRequest  true  "Trip request"
// @Success      200      {object}  PlanResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /api/trips/plan [post]
func (h *TripHandler) PlanTrip(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := h.plan(c, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PlanResponse{RequestID: middleware.GetRequestID(c), Result: result})
}

// CheckFeasibility godoc
// @Summary      Check feasibility
// @Description  Reports whether a day count is workable and recommends one if not
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request  body      FeasibilityRequest  true  "Feasibility request"
// @Success      200      {object}  itinerary.FeasibilityResult
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/trips/feasibility [post]
func (h *TripHandler) CheckFeasibility(c *gin.Context) {
	var req FeasibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()
	stops, err := h.directory.ListStops(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	result, err := h.builder.Feasibility(ctx, req.StartCity, req.EndCity, stops, req.Days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompareDayCounts godoc
// @Summary      Compare day counts
// @Description  Plans the same trip for several day counts
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request  body      CompareRequest  true  "Comparison request"
// @Success      200      {object}  CompareResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/trips/compare [post]
func (h *TripHandler) CompareDayCounts(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	style, err := itinerary.ParseTripStyle(req.Style)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()
	ctx, span := telemetry.Tracer().Start(ctx, "trips.compare", trace.WithAttributes(
		attribute.String("trip.start", req.StartCity),
		attribute.String("trip.end", req.EndCity),
		attribute.IntSlice("trip.days", req.Days),
	))
	defer span.End()

	stops, err := h.directory.ListStops(ctx)
	if err != nil {
		recordSpanError(span, err)
		h.respondError(c, err)
		return
	}
	results, err := h.builder.CompareDayCounts(ctx, req.StartCity, req.EndCity, stops, req.Days, style)
	if err != nil {
		recordSpanError(span, err)
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CompareResponse{RequestID: middleware.GetRequestID(c), Results: results})
}

// ExportTrip godoc
// @Summary      Export a trip
// @Description  Plans a trip and returns it as an iCalendar file, a workbook or JSON
// @Tags         trips
// @Accept       json
// @Produce      text/calendar,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/json
// @Param        format   path      string         true  "ics, xlsx or json"
// @Param        request  body      ExportRequest  true  "Trip request"
// @Success      200      {file}    file
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/trips/export/{format} [post]
func (h *TripHandler) ExportTrip(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	var opts export.Options
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			h.respondError(c, itinerary.ErrInvalidRequest{Field: "startDate", Reason: "must be YYYY-MM-DD"})
			return
		}
		opts.StartDate = start
	}

	result, err := h.plan(c, req.PlanRequest)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, result.FinalPlan, format, opts); err != nil {
		h.respondError(c, err)
		return
	}
	filename := export.Filename(result.FinalPlan, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// RefreshDirectory godoc
// @Summary      Reload the stop pool
// @Tags         internal
// @Produce      json
// @Security     InternalAPIKey
// @Success      200  {object}  RefreshResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /internal/directory/refresh [post]
func (h *TripHandler) RefreshDirectory(c *gin.Context) {
	if h.refresher == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "directory refresh not supported"})
		return
	}
	n, err := h.refresher.Refresh(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info().Int("loaded", n).Msg("Stop directory refreshed")
	c.JSON(http.StatusOK, RefreshResponse{Loaded: n})
}

func (h *TripHandler) plan(c *gin.Context, req PlanRequest) (*itinerary.OptimizationResult, error) {
	style, err := itinerary.ParseTripStyle(req.Style)
	if err != nil {
		return nil, err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()
	ctx, span := telemetry.Tracer().Start(ctx, "trips.plan", trace.WithAttributes(
		attribute.String("trip.start", req.StartCity),
		attribute.String("trip.end", req.EndCity),
		attribute.Int("trip.requested_days", req.Days),
		attribute.String("trip.style", string(style)),
	))
	defer span.End()

	stops, err := h.directory.ListStops(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	result, err := h.builder.Plan(ctx, req.StartCity, req.EndCity, stops, req.Days, style)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("trip.final_days", result.FinalPlan.TotalDays),
		attribute.Bool("trip.adjusted", result.FinalPlan.WasAdjusted),
		attribute.Bool("trip.balanced", result.FinalPlan.DriveTimeBalance.IsBalanced),
	)
	return result, nil
}

func (h *TripHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
