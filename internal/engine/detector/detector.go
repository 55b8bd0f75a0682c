package detector

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"study-planner/internal/model"
)

// Config holds the duplicate matching tolerances.
type Config struct {
	DuplicateWindow     time.Duration
	SimilarityThreshold float64
}

// DefaultConfig returns a ±2h window and a 0.9 title similarity threshold.
func DefaultConfig() Config {
	return Config{
		DuplicateWindow:     2 * time.Hour,
		SimilarityThreshold: 0.9,
	}
}

// Report is the outcome of a detection run over a pending set.
type Report struct {
	Conflicts []model.Conflict
	// Excluded maps obligation ids that must sit out the current pass to the
	// reason they were excluded.
	Excluded map[string]model.ConflictKind
}

// ExcludedIDs returns the excluded ids in sorted order.
func (r Report) ExcludedIDs() []string {
	ids := make([]string, 0, len(r.Excluded))
	for id := range r.Excluded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Detector finds duplicates, dependency cycles and block overlaps.
type Detector struct {
	cfg Config
}

// New returns a Detector using cfg, with unset values defaulted.
func New(cfg Config) Detector {
	def := DefaultConfig()
	if cfg.DuplicateWindow <= 0 {
		cfg.DuplicateWindow = def.DuplicateWindow
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		cfg.SimilarityThreshold = def.SimilarityThreshold
	}
	return Detector{cfg: cfg}
}

// Detect reports dependency cycles and duplicates among obligations. Every
// member of a cycle is excluded; for a duplicate pair, the side from the less
// trusted source is excluded. Nothing is deleted.
func (d Detector) Detect(obligations []model.Obligation) Report {
	report := Report{Excluded: map[string]model.ConflictKind{}}

	for _, c := range d.cycles(obligations) {
		report.Conflicts = append(report.Conflicts, c)
		report.Excluded[c.ObligationA] = model.ConflictDependencyCycle
		report.Excluded[c.ObligationB] = model.ConflictDependencyCycle
	}

	for _, c := range d.Duplicates(obligations) {
		report.Conflicts = append(report.Conflicts, c)
		if _, ok := report.Excluded[c.ObligationB]; !ok {
			report.Excluded[c.ObligationB] = model.ConflictDuplicate
		}
	}
	return report
}

// Duplicates returns one conflict per matching pair. ObligationA is the side
// from the more trusted source.
func (d Detector) Duplicates(obligations []model.Obligation) []model.Conflict {
	type candidate struct {
		o     model.Obligation
		title string
	}
	byDue := make([]candidate, len(obligations))
	for i, o := range obligations {
		byDue[i] = candidate{o: o, title: normalizeTitle(o.Title)}
	}
	slices.SortFunc(byDue, func(a, b candidate) int {
		if c := a.o.DueDate.Compare(b.o.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.o.ID, b.o.ID)
	})

	var out []model.Conflict
	for i := range byDue {
		a := byDue[i]
		for j := i + 1; j < len(byDue); j++ {
			b := byDue[j]
			if b.o.DueDate.Sub(a.o.DueDate) > d.cfg.DuplicateWindow {
				break
			}
			if a.o.Source == b.o.Source || a.o.CourseID != b.o.CourseID {
				continue
			}
			sim := similarity(a.title, b.title)
			if sim < d.cfg.SimilarityThreshold {
				continue
			}
			keep, drop := a.o, b.o
			if outranks(b.o, a.o) {
				keep, drop = b.o, a.o
			}
			detail := fmt.Sprintf("%q from %s matches %q from %s (similarity %.2f, due %s apart)",
				keep.Title, keep.Source, drop.Title, drop.Source, sim, b.o.DueDate.Sub(a.o.DueDate))
			out = append(out, model.Conflict{
				ObligationA: keep.ID,
				ObligationB: drop.ID,
				Kind:        model.ConflictDuplicate,
				Detail:      detail,
			})
		}
	}
	return out
}

// Overlaps returns one conflict per pair of intersecting blocks. Skipped blocks
// do not occupy time.
func (d Detector) Overlaps(blocks []model.ScheduledBlock) []model.Conflict {
	live := make([]model.ScheduledBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Status != model.BlockSkipped {
			live = append(live, b)
		}
	}
	slices.SortFunc(live, func(a, b model.ScheduledBlock) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var out []model.Conflict
	var active []model.ScheduledBlock
	for _, b := range live {
		kept := active[:0]
		for _, a := range active {
			if a.End.After(b.Start) {
				kept = append(kept, a)
			}
		}
		active = kept
		for _, a := range active {
			detail := fmt.Sprintf("block %s [%s, %s) overlaps block %s [%s, %s)",
				a.ID, a.Start.Format(time.RFC3339), a.End.Format(time.RFC3339),
				b.ID, b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
			out = append(out, model.Conflict{
				ObligationA: a.ObligationID,
				ObligationB: b.ObligationID,
				BlockA:      a.ID,
				BlockB:      b.ID,
				Kind:        model.ConflictScheduleOverlap,
				Detail:      detail,
			})
		}
		active = append(active, b)
	}
	return out
}

// outranks reports whether a should be kept over b.
func outranks(a, b model.Obligation) bool {
	if a.Source.Rank() != b.Source.Rank() {
		return a.Source.Rank() > b.Source.Rank()
	}
	return a.ID < b.ID
}
