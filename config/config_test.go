package config

import (
	"slices"
	"testing"
	"time"

	"study-planner/internal/model"
)

func TestEngineConfigs(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.Planner.Timezone = "Asia/Ho_Chi_Minh"
	cfg.Scorer.CategoryWeights = map[string]float64{"Exam": 0.95}

	out, err := cfg.EngineConfigs()
	if err != nil {
		t.Fatalf("EngineConfigs() error = %v", err)
	}

	if out.Builder.Location.String() != "Asia/Ho_Chi_Minh" {
		t.Errorf("location = %s", out.Builder.Location)
	}
	if out.Builder.MaxDailyDeepWork != 6*time.Hour {
		t.Errorf("max daily deep work = %s, want 6h", out.Builder.MaxDailyDeepWork)
	}
	if out.Builder.MinBlock != 30*time.Minute {
		t.Errorf("min block = %s, want 30m", out.Builder.MinBlock)
	}
	if out.Scorer.Horizon != 30*24*time.Hour {
		t.Errorf("scorer horizon = %s", out.Scorer.Horizon)
	}
	if got := out.Scorer.CategoryWeights[model.CategoryExam]; got != 0.95 {
		t.Errorf("exam weight = %v, want 0.95", got)
	}
	if got := out.Scorer.CategoryWeights[model.CategoryQuiz]; got != 0.6 {
		t.Errorf("quiz weight = %v, want default 0.6", got)
	}
	if out.Detector.DuplicateWindow != 2*time.Hour || out.Detector.SimilarityThreshold != 0.9 {
		t.Errorf("detector = %+v", out.Detector)
	}
	if len(out.DeadlineWarningHours) != 3 || out.DeadlineWarningHours[0] != 24 {
		t.Errorf("deadline warning hours = %v", out.DeadlineWarningHours)
	}
	if out.DefaultBlockMinutes != 90 || out.DefaultBreakMinutes != 15 {
		t.Errorf("productivity defaults = %d/%d", out.DefaultBlockMinutes, out.DefaultBreakMinutes)
	}
	if !slices.Equal(out.DefaultPeakHours, []int{8, 9, 10, 15, 16}) || !slices.Equal(out.DefaultAvoidHours, []int{13, 14, 22, 23}) {
		t.Errorf("cold-start hours = %v / %v", out.DefaultPeakHours, out.DefaultAvoidHours)
	}
	if out.Builder.ScaleByCompletionRatio {
		t.Error("completion ratio scaling should be off by default")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Planner.Timezone != "America/New_York" {
		t.Errorf("timezone = %q, want America/New_York", cfg.Planner.Timezone)
	}
	out, err := cfg.EngineConfigs()
	if err != nil {
		t.Fatalf("EngineConfigs() error = %v", err)
	}
	if out.Builder.Location.String() != "America/New_York" {
		t.Errorf("location = %s", out.Builder.Location)
	}
}

func TestEngineConfigsErrors(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	bad := *cfg
	bad.Planner.Timezone = "Mars/Olympus"
	if _, err := bad.EngineConfigs(); err == nil {
		t.Error("expected error for unknown timezone")
	}

	bad = *cfg
	bad.Scorer.CategoryWeights = map[string]float64{"homework": 1}
	if _, err := bad.EngineConfigs(); err == nil {
		t.Error("expected error for unknown category")
	}

	bad = *cfg
	bad.Productivity.PeakHours = []int{9, 24}
	if _, err := bad.EngineConfigs(); err == nil {
		t.Error("expected error for peak hour outside the day")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" primary, ,work@example.com ")
	if len(got) != 2 || got[0] != "primary" || got[1] != "work@example.com" {
		t.Errorf("splitList() = %v", got)
	}
}
