// Package workouts manages the workout list: CRUD, import, completion
// records and the theme preference. Every mutation writes the whole list
// through to the repository before it is applied in memory.
package workouts

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/services/transfer"
)

// Repository persists the workout list and theme
type Repository interface {
	Load(ctx context.Context) ([]domain.Workout, error)
	Save(ctx context.Context, workouts []domain.Workout) error
	Clear(ctx context.Context) error
	LoadTheme(ctx context.Context) (domain.Theme, error)
	SaveTheme(ctx context.Context, theme domain.Theme) error
}

// ImportMode selects how imported workouts combine with the existing list
type ImportMode string

const (
	ImportAppend  ImportMode = "append"
	ImportReplace ImportMode = "replace"
)

// ParseImportMode accepts append (the default) or replace
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case ImportAppend, "":
		return ImportAppend, nil
	case ImportReplace:
		return ImportReplace, nil
	default:
		return "", fmt.Errorf("unknown import mode %q", s)
	}
}

// Stats are the dashboard totals
type Stats struct {
	Workouts          int `json:"workouts"`
	Exercises         int `json:"exercises"`
	CompletedSessions int `json:"completedSessions"`
}

// Service owns the in-memory workout list
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() domain.WorkoutID

	workouts []domain.Workout
	theme    domain.Theme
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides id generation
func WithIDGenerator(newID func() domain.WorkoutID) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a service with an empty list. Call Load to read
// saved state.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:     repo,
		logger:   logger,
		now:      time.Now,
		newID:    transfer.NewID,
		workouts: []domain.Workout{},
		theme:    domain.ThemeDark,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the saved list and theme. A failure leaves an empty list or
// the dark theme in place and is returned for display.
func (s *Service) Load(ctx context.Context) error {
	var errs []error

	workouts, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load workouts, starting empty", "error", err)
		s.workouts = []domain.Workout{}
		errs = append(errs, err)
	} else {
		s.workouts = workouts
	}

	theme, err := s.repo.LoadTheme(ctx)
	if err != nil {
		s.logger.Warn("failed to load theme, using dark", "error", err)
		errs = append(errs, err)
	}
	s.theme = theme
	if s.theme == "" {
		s.theme = domain.ThemeDark
	}

	s.logger.Debug("loaded workouts", "count", len(s.workouts), "theme", s.theme)
	if len(errs) > 0 {
		return fmt.Errorf("load saved state: %w", errs[0])
	}
	return nil
}

// List returns a copy of every workout in order
func (s *Service) List() []domain.Workout {
	out := make([]domain.Workout, len(s.workouts))
	for i, w := range s.workouts {
		out[i] = w.Clone()
	}
	return out
}

// Len returns the number of workouts
func (s *Service) Len() int {
	return len(s.workouts)
}

// Get returns a copy of one workout
func (s *Service) Get(id domain.WorkoutID) (domain.Workout, error) {
	i := s.index(id)
	if i < 0 {
		return domain.Workout{}, fmt.Errorf("workout %s: %w", id, domain.ErrNotFound)
	}
	return s.workouts[i].Clone(), nil
}

// Add creates a workout with a fresh id and creation time
func (s *Service) Add(ctx context.Context, name string, exercises []domain.Exercise) (domain.Workout, error) {
	name, exercises, err := validate(name, exercises)
	if err != nil {
		return domain.Workout{}, err
	}

	w := domain.Workout{
		ID:        s.newID(),
		Name:      name,
		Exercises: exercises,
		CreatedAt: s.now(),
	}

	next := append(s.List(), w)
	if err := s.commit(ctx, "add", next); err != nil {
		return domain.Workout{}, err
	}
	s.logger.Info("workout added", "id", w.ID, "name", w.Name, "exercises", len(w.Exercises))
	return w.Clone(), nil
}

// Update replaces a workout's name and exercises, keeping its id,
// creation time and completion stats
func (s *Service) Update(ctx context.Context, id domain.WorkoutID, name string, exercises []domain.Exercise) (domain.Workout, error) {
	i := s.index(id)
	if i < 0 {
		return domain.Workout{}, fmt.Errorf("workout %s: %w", id, domain.ErrNotFound)
	}
	name, exercises, err := validate(name, exercises)
	if err != nil {
		return domain.Workout{}, err
	}

	next := s.List()
	next[i].Name = name
	next[i].Exercises = exercises
	if err := s.commit(ctx, "update", next); err != nil {
		return domain.Workout{}, err
	}
	s.logger.Info("workout updated", "id", id, "name", name)
	return next[i].Clone(), nil
}

// Delete removes exactly one workout, keeping the order of the rest
func (s *Service) Delete(ctx context.Context, id domain.WorkoutID) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("workout %s: %w", id, domain.ErrNotFound)
	}

	next := slices.Delete(s.List(), i, i+1)
	if err := s.commit(ctx, "delete", next); err != nil {
		return err
	}
	s.logger.Info("workout deleted", "id", id)
	return nil
}

// ReplaceAll swaps in a whole new list
func (s *Service) ReplaceAll(ctx context.Context, workouts []domain.Workout) error {
	next := make([]domain.Workout, len(workouts))
	for i, w := range workouts {
		next[i] = w.Clone()
	}
	return s.commit(ctx, "replace", next)
}

// Import parses an import file and appends or replaces. It returns the
// number of workouts accepted. Nothing is written when parsing fails.
func (s *Service) Import(ctx context.Context, data []byte, mode ImportMode) (int, error) {
	imported, err := transfer.Importer{Now: s.now, NewID: s.newID}.Parse(data)
	if err != nil {
		s.logger.Warn("import rejected", "error", err)
		return 0, err
	}

	var next []domain.Workout
	switch mode {
	case ImportReplace:
		next = dedupeIDs(nil, imported, s.newID)
	default:
		next = dedupeIDs(s.List(), imported, s.newID)
	}

	if err := s.commit(ctx, "import", next); err != nil {
		return 0, err
	}
	s.logger.Info("workouts imported", "count", len(imported), "mode", mode)
	return len(imported), nil
}

// Clear removes every workout and the stored key
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("failed to clear workouts", "error", err)
		return fmt.Errorf("clear workouts: %w", err)
	}
	s.workouts = []domain.Workout{}
	s.logger.Info("workouts cleared")
	return nil
}

// RecordCompletion increments a workout's completed sessions and stamps
// the completion time
func (s *Service) RecordCompletion(ctx context.Context, id domain.WorkoutID, at time.Time) (domain.Workout, error) {
	i := s.index(id)
	if i < 0 {
		return domain.Workout{}, fmt.Errorf("workout %s: %w", id, domain.ErrNotFound)
	}

	next := s.List()
	next[i].CompletedSessions++
	next[i].LastCompleted = &at
	if err := s.commit(ctx, "complete", next); err != nil {
		return domain.Workout{}, err
	}
	s.logger.Info("workout completed", "id", id, "sessions", next[i].CompletedSessions)
	return next[i].Clone(), nil
}

// Stats returns totals for the dashboard
func (s *Service) Stats() Stats {
	st := Stats{Workouts: len(s.workouts)}
	for _, w := range s.workouts {
		st.Exercises += len(w.Exercises)
		st.CompletedSessions += w.CompletedSessions
	}
	return st
}

// Theme returns the current theme
func (s *Service) Theme() domain.Theme {
	return s.theme
}

// SetTheme persists a theme
func (s *Service) SetTheme(ctx context.Context, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.repo.SaveTheme(ctx, theme); err != nil {
		s.logger.Error("failed to save theme", "error", err)
		return fmt.Errorf("save theme: %w", err)
	}
	s.theme = theme
	return nil
}

// ToggleTheme flips between dark and light
func (s *Service) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	next := s.theme.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return s.theme, err
	}
	return next, nil
}

func (s *Service) commit(ctx context.Context, op string, next []domain.Workout) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("failed to save workouts", "op", op, "error", err)
		return fmt.Errorf("%s workout: %w", op, err)
	}
	s.workouts = next
	return nil
}

func (s *Service) index(id domain.WorkoutID) int {
	return slices.IndexFunc(s.workouts, func(w domain.Workout) bool {
		return w.ID == id
	})
}

// validate trims the name and drops exercises without a name
func validate(name string, exercises []domain.Exercise) (string, []domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, domain.ErrEmptyName
	}

	kept := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if strings.TrimSpace(ex.Name) == "" {
			continue
		}
		ex.Name = strings.TrimSpace(ex.Name)
		kept = append(kept, ex.Clamp())
	}
	if len(kept) == 0 {
		return "", nil, domain.ErrNoExercises
	}
	return name, kept, nil
}

// dedupeIDs appends incoming to existing, giving a fresh id to any
// workout whose id is already taken
func dedupeIDs(existing, incoming []domain.Workout, newID func() domain.WorkoutID) []domain.Workout {
	seen := make(map[domain.WorkoutID]bool, len(existing)+len(incoming))
	for _, w := range existing {
		seen[w.ID] = true
	}
	out := existing
	for _, w := range incoming {
		for seen[w.ID] {
			w.ID = newID()
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}
