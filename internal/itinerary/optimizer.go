package itinerary

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// OptimizeRequest is one planning request with resolved endpoints.
type OptimizeRequest struct {
	Start         Stop
	End           Stop
	Stops         []Stop
	RequestedDays int
	Style         TripStyle
}

// BalanceMetrics bundles every quality view computed during optimization.
type BalanceMetrics struct {
	Feasibility FeasibilityResult `json:"feasibility"`
	Stats       BalanceStats      `json:"stats"`
	Validation  ValidationReport  `json:"validation"`
	Violations  int               `json:"violations"`
}

// OptimizationResult is the final plan plus the audit trail of how it was reached.
type OptimizationResult struct {
	FinalPlan         *TripPlan      `json:"finalPlan"`
	OptimizationSteps []string       `json:"optimizationSteps"`
	BalanceMetrics    BalanceMetrics `json:"balanceMetrics"`
	WasOptimized      bool           `json:"wasOptimized"`
}

// Optimizer orchestrates feasibility, balancing, plan assembly and validation.
type Optimizer struct {
	config    *Config
	balancer  *Balancer
	planner   PlanningService
	validator *Validator
	metrics   *MetricsRecorder
	logger    zerolog.Logger
}

// NewOptimizer creates a new optimizer. A nil planner selects the corridor planner.
func NewOptimizer(config *Config, planner PlanningService, metrics *MetricsRecorder) *Optimizer {
	corridor := config.Corridor()
	if planner == nil {
		planner = NewCorridorPlanner(corridor)
	}
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &Optimizer{
		config:    config,
		balancer:  NewBalancer(config, corridor),
		planner:   planner,
		validator: NewValidator(config),
		metrics:   metrics,
		logger:    log.With().Str("component", "trip_optimizer").Logger(),
	}
}

// Config returns the optimizer configuration.
func (o *Optimizer) Config() *Config {
	return o.config
}

// CheckFeasibility checks a trip against the optimizer thresholds using the
// straight-line distance between the endpoints.
func (o *Optimizer) CheckFeasibility(start, end Stop, requestedDays int) FeasibilityResult {
	return evaluateFeasibility(o.config, StopDistance(start, end), requestedDays)
}

// Optimize plans a trip and corrects the day count when needed.
// Balancing runs once; balance and validation are reported, never re-applied.
func (o *Optimizer) Optimize(ctx context.Context, req OptimizeRequest) (*OptimizationResult, error) {
	started := time.Now()
	result, err := o.optimize(ctx, req)
	o.metrics.RecordPlan(time.Since(started), err)
	return result, err
}

func (o *Optimizer) optimize(ctx context.Context, req OptimizeRequest) (*OptimizationResult, error) {
	if req.RequestedDays < 1 {
		o.metrics.RecordError("invalid_request")
		return nil, ErrInvalidRequest{Field: "requestedDays", Reason: "must be at least 1"}
	}
	o.metrics.RecordStopPool(len(req.Stops))

	steps := []string{}

	feasibility := evaluateFeasibility(o.config, o.balancer.CorridorDistance(req.Start, req.End, req.Stops), req.RequestedDays)
	switch {
	case !feasibility.IsFeasible:
		steps = append(steps, fmt.Sprintf("Pre-flight: %d days is not feasible, %d days recommended",
			req.RequestedDays, feasibility.RecommendedDays))
	case feasibility.IsLong:
		steps = append(steps, fmt.Sprintf("Pre-flight: %d days is feasible but long, averaging %.1f hours per day",
			req.RequestedDays, feasibility.AverageDailyHours))
	}

	balanced, err := o.balancer.Balance(ctx, req.Start, req.End, req.Stops, req.RequestedDays)
	if err != nil {
		o.metrics.RecordError("balance")
		return nil, err
	}
	for _, adj := range balanced.AdjustmentsMade {
		steps = append(steps, "Balancer: "+adj)
	}

	finalDays := balanced.RecommendedDays
	plan, err := o.planner.BuildPlan(ctx, PlanInput{
		Start:     req.Start,
		End:       req.End,
		Stops:     req.Stops,
		Segments:  balanced.Segments,
		FinalDays: finalDays,
		Style:     req.Style,
	})
	if err != nil {
		o.metrics.RecordError("plan")
		return nil, fmt.Errorf("failed to build plan: %w", err)
	}

	report := o.validator.Validate(plan.Segments)
	for _, issue := range report.Issues {
		steps = append(steps, "Validation: "+issue.Message)
	}

	stats := CalculateBalance(plan.Segments)
	plan.WasAdjusted = finalDays != req.RequestedDays || len(balanced.AdjustmentsMade) > 0
	if plan.WasAdjusted {
		plan.OriginalDays = req.RequestedDays
	}
	plan.DriveTimeBalance = DriveTimeBalance{
		IsBalanced:       balanced.IsBalanced,
		AverageDriveTime: stats.AverageDriveTime,
		MinDriveTime:     stats.MinDriveTime,
		MaxDriveTime:     stats.MaxDriveTime,
		QualityLabel:     stats.QualityLabel,
		QualityGrade:     stats.QualityGrade,
		BalanceScore:     stats.Score,
		ValidationScore:  report.Score,
		ValidationGrade:  report.Grade,
		Variance:         stats.Variance,
		StdDev:           report.StdDev,
		Suggestions:      mergeSuggestions(stats.Suggestions, report.Suggestions),
	}

	o.metrics.RecordAdjustment(req.RequestedDays, finalDays)
	o.metrics.RecordPlanShape(finalDays, stats.MaxDriveTime, balanced.IsBalanced)

	o.logger.Info().
		Str("start", plan.StartCity).
		Str("end", plan.EndCity).
		Int("requested_days", req.RequestedDays).
		Int("final_days", finalDays).
		Float64("max_hours", stats.MaxDriveTime).
		Bool("balanced", balanced.IsBalanced).
		Msg("Trip optimized")

	return &OptimizationResult{
		FinalPlan:         plan,
		OptimizationSteps: steps,
		BalanceMetrics: BalanceMetrics{
			Feasibility: feasibility,
			Stats:       stats,
			Validation:  report,
			Violations:  balanced.ViolationCount,
		},
		WasOptimized: plan.WasAdjusted,
	}, nil
}

// mergeSuggestions combines calculator and validator suggestions without duplicates.
// The affirmative message is kept only when nothing else was suggested.
func mergeSuggestions(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			if s == SuggestBalanced || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = append(out, SuggestBalanced)
	}
	return out
}
