package scorer

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"study-planner/internal/model"
)

// effortSaturation is the number of preferred blocks at which the effort signal reaches 1.
const effortSaturation = 8.0

// Input is everything needed to score one obligation.
type Input struct {
	Obligation  model.Obligation
	Course      *model.Course
	Profile     model.ProductivityProfile
	Preferences model.UserPreferences
	// FanIn is the number of pending obligations that depend on this one.
	FanIn int
	Now   time.Time
}

// Scorer computes priorities. It is a pure function of its inputs.
type Scorer struct {
	cfg Config
}

// New returns a Scorer using cfg, with unset values defaulted.
func New(cfg Config) Scorer {
	return Scorer{cfg: cfg.normalize()}
}

// Config returns the effective configuration.
func (s Scorer) Config() Config {
	return s.cfg
}

// Score computes the priority of a single obligation. Missing data never fails the
// computation: defaults are substituted and noted in the reasoning.
func (s Scorer) Score(in Input) model.Priority {
	var notes []string

	weight, weightNote := s.categoryWeight(in.Obligation.Category, in.Preferences)
	if weightNote != "" {
		notes = append(notes, weightNote)
	}

	hoursUntil := in.Obligation.HoursUntilDue(in.Now)
	urgency := s.Urgency(hoursUntil)

	courseDifficulty := s.cfg.DefaultCourseDifficulty
	switch {
	case in.Course == nil:
		notes = append(notes, fmt.Sprintf("course unknown, difficulty %.2f assumed", courseDifficulty))
	case in.Course.DifficultyEstimate < 0 || in.Course.DifficultyEstimate > 1:
		notes = append(notes, fmt.Sprintf("course difficulty out of range, %.2f assumed", courseDifficulty))
	default:
		courseDifficulty = in.Course.DifficultyEstimate
	}
	if in.Obligation.EstimatedHours <= 0 {
		notes = append(notes, fmt.Sprintf("no effort estimate, %.1fh assumed", model.DefaultEstimatedHours))
	}
	effort := effortSignal(in.Obligation.Effort(), in.Profile.BlockLength())
	difficulty := 0.4*courseDifficulty + 0.3*weight + 0.3*effort

	fanIn := fanInSignal(in.FanIn)
	importance := 0.7*weight + 0.3*fanIn

	w := s.cfg.Weights
	parts := []struct {
		name  string
		value float64
	}{
		{"urgency", w.Urgency * urgency},
		{"difficulty", w.Difficulty * difficulty},
		{"importance", w.Importance * importance},
	}
	score := parts[0].value + parts[1].value + parts[2].value

	dominant := parts[0]
	for _, p := range parts[1:] {
		if p.value > dominant.value {
			dominant = p
		}
	}

	var reason strings.Builder
	fmt.Fprintf(&reason, "%s dominates", dominant.name)
	switch dominant.name {
	case "urgency":
		if hoursUntil < 0 {
			fmt.Fprintf(&reason, " (overdue by %.1fh)", -hoursUntil)
		} else {
			fmt.Fprintf(&reason, " (due in %.1fh)", hoursUntil)
		}
	case "difficulty":
		fmt.Fprintf(&reason, " (course %.2f, effort %.1fh)", courseDifficulty, in.Obligation.Effort())
	case "importance":
		fmt.Fprintf(&reason, " (%s weight %.2f, blocks %d)", categoryName(in.Obligation.Category), weight, in.FanIn)
	}
	for _, n := range notes {
		reason.WriteString("; ")
		reason.WriteString(n)
	}

	return model.Priority{
		Urgency:    urgency,
		Difficulty: difficulty,
		Importance: importance,
		Score:      score,
		Reasoning:  reason.String(),
	}
}

// Urgency maps signed hours until due to an urgency value. It is strictly
// decreasing in hoursUntil. Inside the horizon it falls linearly from 1 to the
// floor, beyond it the tail decays hyperbolically towards zero. Overdue values
// are always above 1 and grow with lateness.
func (s Scorer) Urgency(hoursUntil float64) float64 {
	h := s.cfg.Horizon.Hours()
	floor := s.cfg.UrgencyFloor
	switch {
	case hoursUntil < 0:
		overdue := -hoursUntil
		return 1 + s.cfg.OverduePenalty*(1+overdue/(overdue+h))
	case hoursUntil <= h:
		return 1 - (1-floor)*hoursUntil/h
	default:
		return floor * h / hoursUntil
	}
}

// ScoreAll scores every obligation against the same snapshot and returns copies
// with Priority set, ordered by Less. Fan-in is computed within the given set.
func (s Scorer) ScoreAll(
	obligations []model.Obligation,
	courses map[string]model.Course,
	profile model.ProductivityProfile,
	prefs model.UserPreferences,
	now time.Time,
) []model.Obligation {
	fanIn := FanIn(obligations)
	out := make([]model.Obligation, len(obligations))
	for i, o := range obligations {
		in := Input{
			Obligation:  o,
			Profile:     profile,
			Preferences: prefs,
			FanIn:       fanIn[o.ID],
			Now:         now,
		}
		if c, ok := courses[o.CourseID]; ok && o.CourseID != "" {
			in.Course = &c
		}
		o.Priority = s.Score(in)
		out[i] = o
	}
	Sort(out)
	return out
}

// FanIn counts, for every obligation id, how many distinct obligations in the set
// depend on it. References to ids outside the set are ignored.
func FanIn(obligations []model.Obligation) map[string]int {
	present := make(map[string]struct{}, len(obligations))
	for _, o := range obligations {
		present[o.ID] = struct{}{}
	}
	out := make(map[string]int, len(obligations))
	for _, o := range obligations {
		seen := make(map[string]struct{}, len(o.Dependencies))
		for _, dep := range o.Dependencies {
			if dep == o.ID {
				continue
			}
			if _, ok := present[dep]; !ok {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			out[dep]++
		}
	}
	return out
}

// Compare orders by descending score, then earliest due date, then title, then id.
func Compare(a, b model.Obligation) int {
	if a.Priority.Score != b.Priority.Score {
		if a.Priority.Score > b.Priority.Score {
			return -1
		}
		return 1
	}
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return c
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Less reports whether a should be handled before b.
func Less(a, b model.Obligation) bool {
	return Compare(a, b) < 0
}

// Sort orders obligations in place by Compare.
func Sort(obligations []model.Obligation) {
	slices.SortStableFunc(obligations, Compare)
}

func (s Scorer) categoryWeight(c model.Category, prefs model.UserPreferences) (float64, string) {
	if !c.Valid() {
		return s.weightOf(model.CategoryOther, prefs), fmt.Sprintf("unknown category %q scored as other", string(c))
	}
	return s.weightOf(c, prefs), ""
}

func (s Scorer) weightOf(c model.Category, prefs model.UserPreferences) float64 {
	if v, ok := prefs.CategoryWeightOverrides[c]; ok && v >= 0 {
		return v
	}
	return s.cfg.CategoryWeights[c]
}

func categoryName(c model.Category) string {
	if !c.Valid() {
		return string(model.CategoryOther)
	}
	return string(c)
}

func effortSignal(hours float64, block time.Duration) float64 {
	blockHours := block.Hours()
	if blockHours <= 0 {
		blockHours = 1.5
	}
	return clamp(math.Log1p(hours/blockHours)/math.Log1p(effortSaturation), 0, 1)
}

func fanInSignal(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 - 1/float64(1+n)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
