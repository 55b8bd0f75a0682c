package scorer

import (
	"time"

	"study-planner/internal/model"
)

// Weights combine the three score components.
type Weights struct {
	Urgency    float64
	Difficulty float64
	Importance float64
}

// Config holds the tunables of the scorer. Urgency decays linearly over Horizon
// down to UrgencyFloor; OverduePenalty is added on top of full urgency once the
// deadline has passed.
type Config struct {
	Horizon                 time.Duration
	UrgencyFloor            float64
	OverduePenalty          float64
	DefaultCourseDifficulty float64
	Weights                 Weights
	CategoryWeights         map[model.Category]float64
}

// DefaultCategoryWeights ranks exam > project > assignment > quiz > lab > reading > discussion > other.
var DefaultCategoryWeights = map[model.Category]float64{
	model.CategoryExam:       1.0,
	model.CategoryProject:    0.85,
	model.CategoryAssignment: 0.7,
	model.CategoryQuiz:       0.6,
	model.CategoryLab:        0.5,
	model.CategoryReading:    0.4,
	model.CategoryDiscussion: 0.3,
	model.CategoryOther:      0.2,
}

// DefaultConfig returns the scorer configuration used when nothing is configured.
func DefaultConfig() Config {
	weights := make(map[model.Category]float64, len(DefaultCategoryWeights))
	for k, v := range DefaultCategoryWeights {
		weights[k] = v
	}
	return Config{
		Horizon:                 30 * 24 * time.Hour,
		UrgencyFloor:            0.05,
		OverduePenalty:          0.5,
		DefaultCourseDifficulty: 0.5,
		Weights:                 Weights{Urgency: 0.5, Difficulty: 0.2, Importance: 0.3},
		CategoryWeights:         weights,
	}
}

// normalize fills zero or out-of-range values from the defaults.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.Horizon <= 0 {
		c.Horizon = def.Horizon
	}
	if c.UrgencyFloor <= 0 || c.UrgencyFloor >= 1 {
		c.UrgencyFloor = def.UrgencyFloor
	}
	if c.OverduePenalty <= 0 {
		c.OverduePenalty = def.OverduePenalty
	}
	if c.DefaultCourseDifficulty < 0 || c.DefaultCourseDifficulty > 1 {
		c.DefaultCourseDifficulty = def.DefaultCourseDifficulty
	}
	if c.Weights == (Weights{}) {
		c.Weights = def.Weights
	}
	merged := make(map[model.Category]float64, len(def.CategoryWeights))
	for k, v := range def.CategoryWeights {
		merged[k] = v
	}
	for k, v := range c.CategoryWeights {
		merged[k] = v
	}
	c.CategoryWeights = merged
	return c
}
