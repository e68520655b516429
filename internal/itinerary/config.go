package itinerary

// Config holds the thresholds and constants used by the planning engine.
// It is loaded from the planning section of the service configuration.
type Config struct {
	// Speed used for every distance to drive-time conversion
	AverageSpeedMPH float64 `mapstructure:"average_speed_mph" default:"50"`

	// Daily drive-time thresholds (hours)
	MinDailyHours     float64 `mapstructure:"min_daily_hours" default:"3"`
	IdealDailyHours   float64 `mapstructure:"ideal_daily_hours" default:"6"`
	MaxDailyHours     float64 `mapstructure:"max_daily_hours" default:"8"`
	ExtremeDailyHours float64 `mapstructure:"extreme_daily_hours" default:"10"`

	// Target used when recommending a corrected day count
	RecommendTargetHours float64 `mapstructure:"recommend_target_hours" default:"8"`

	// Population standard deviation above which a split counts as unbalanced
	MaxStdDevHours float64 `mapstructure:"max_stddev_hours" default:"1.5"`

	// Upper bound for day-count correction
	MaxDays int `mapstructure:"max_days" default:"21"`

	// Corridor definition, states in traversal order
	CorridorName   string   `mapstructure:"corridor_name" default:"Route 66"`
	CorridorStates []string `mapstructure:"corridor_states" default:"[IL,MO,KS,OK,TX,NM,AZ,CA]"`

	// Batch comparison limits
	CompareConcurrency  int `mapstructure:"compare_concurrency" default:"4"`
	MaxCompareDayCounts int `mapstructure:"max_compare_day_counts" default:"10"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		AverageSpeedMPH:      AverageSpeedMPH,
		MinDailyHours:        3,
		IdealDailyHours:      6,
		MaxDailyHours:        8,
		ExtremeDailyHours:    10,
		RecommendTargetHours: 8,
		MaxStdDevHours:       1.5,
		MaxDays:              21,
		CorridorName:         "Route 66",
		CorridorStates:       []string{"IL", "MO", "KS", "OK", "TX", "NM", "AZ", "CA"},
		CompareConcurrency:   4,
		MaxCompareDayCounts:  10,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.AverageSpeedMPH <= 0 {
		return ErrInvalidConfig{Field: "average_speed_mph", Reason: "must be positive"}
	}
	if c.MinDailyHours <= 0 {
		return ErrInvalidConfig{Field: "min_daily_hours", Reason: "must be positive"}
	}
	if c.IdealDailyHours <= c.MinDailyHours {
		return ErrInvalidConfig{Field: "ideal_daily_hours", Reason: "must be greater than min_daily_hours"}
	}
	if c.MaxDailyHours <= c.IdealDailyHours {
		return ErrInvalidConfig{Field: "max_daily_hours", Reason: "must be greater than ideal_daily_hours"}
	}
	if c.ExtremeDailyHours <= c.MaxDailyHours {
		return ErrInvalidConfig{Field: "extreme_daily_hours", Reason: "must be greater than max_daily_hours"}
	}
	if c.RecommendTargetHours <= 0 || c.RecommendTargetHours > c.MaxDailyHours {
		return ErrInvalidConfig{Field: "recommend_target_hours", Reason: "must be positive and at most max_daily_hours"}
	}
	if c.MaxStdDevHours <= 0 {
		return ErrInvalidConfig{Field: "max_stddev_hours", Reason: "must be positive"}
	}
	if c.MaxDays < 1 {
		return ErrInvalidConfig{Field: "max_days", Reason: "must be at least 1"}
	}
	if len(c.CorridorStates) == 0 {
		return ErrInvalidConfig{Field: "corridor_states", Reason: "must list at least one state"}
	}
	seen := make(map[string]bool, len(c.CorridorStates))
	for _, s := range c.CorridorStates {
		if seen[s] {
			return ErrInvalidConfig{Field: "corridor_states", Reason: "duplicate state " + s}
		}
		seen[s] = true
	}
	if c.CompareConcurrency < 1 {
		return ErrInvalidConfig{Field: "compare_concurrency", Reason: "must be at least 1"}
	}
	if c.MaxCompareDayCounts < 1 {
		return ErrInvalidConfig{Field: "max_compare_day_counts", Reason: "must be at least 1"}
	}
	return nil
}

// Corridor builds the geography corridor described by the configuration.
func (c *Config) Corridor() *Corridor {
	return NewCorridor(c.CorridorName, c.CorridorStates)
}
