package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// SavingGoalService manages saving goals. Progress toward a goal is the
// owner's overall balance; every goal of one user reports the same
// AmountSaved.
type SavingGoalService struct {
	goals        storage.SavingGoalRepository
	transactions *TransactionService
	logger       *slog.Logger
}

// NewSavingGoalService creates a new saving goal service.
func NewSavingGoalService(goals storage.SavingGoalRepository, transactions *TransactionService, logger *slog.Logger) *SavingGoalService {
	return &SavingGoalService{goals: goals, transactions: transactions, logger: logger}
}

// GetByID returns the goal with its amount saved.
func (s *SavingGoalService) GetByID(ctx context.Context, id int) (*SavingGoalDTO, error) {
	if err := requireID("saving goal id", id); err != nil {
		return nil, err
	}
	g, err := s.goals.GetSavingGoalByID(ctx, id)
	if err != nil {
		return nil, translate(err, EntitySavingGoal, id, "failed to load saving goal")
	}
	saved, err := s.transactions.GetBalance(ctx, g.UserID)
	if err != nil {
		return nil, err
	}
	dto := newSavingGoalDTO(*g, saved)
	return &dto, nil
}

// GetByUserID returns every goal of the user. An empty result is a
// NotFound error.
func (s *SavingGoalService) GetByUserID(ctx context.Context, userID int) ([]SavingGoalDTO, error) {
	goals, err := s.goals.ListSavingGoalsByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, EntitySavingGoal, userID, "failed to list saving goals")
	}
	return s.enrichAll(ctx, goals, userID)
}

// GetByUserIDPaged returns one page of the user's goals.
func (s *SavingGoalService) GetByUserIDPaged(ctx context.Context, userID, page, pageSize int) ([]SavingGoalDTO, error) {
	goals, err := s.goals.ListSavingGoalsByUserPaged(ctx, userID, page, pageSize)
	if err != nil {
		return nil, translate(err, EntitySavingGoal, userID, "failed to list saving goals")
	}
	return s.enrichAll(ctx, goals, userID)
}

// Add creates a saving goal for the user.
func (s *SavingGoalService) Add(ctx context.Context, name string, target float64, deadline time.Time, userID int) (*SavingGoalDTO, error) {
	g := models.SavingGoal{
		Name:     strings.TrimSpace(name),
		Target:   target,
		Deadline: models.Day(deadline),
		UserID:   userID,
	}
	if err := validateSavingGoal(name, g); err != nil {
		return nil, err
	}
	if err := s.goals.CreateSavingGoal(ctx, &g); err != nil {
		return nil, translate(err, EntitySavingGoal, g.Name, "could not add saving goal")
	}
	s.logger.Info("Saving goal added", "saving_goal_id", g.ID, "user_id", userID)

	saved, err := s.transactions.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := newSavingGoalDTO(g, saved)
	return &dto, nil
}

// Edit overwrites a saving goal. It reports false on any failure.
func (s *SavingGoalService) Edit(ctx context.Context, id int, name string, target float64, deadline time.Time, userID int) bool {
	g := models.SavingGoal{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Target:   target,
		Deadline: models.Day(deadline),
		UserID:   userID,
	}
	err := requireID("saving goal id", id)
	if err == nil {
		err = validateSavingGoal(name, g)
	}
	if err == nil {
		if err = s.goals.UpdateSavingGoal(ctx, &g); err != nil {
			err = translate(err, EntitySavingGoal, id, "could not edit saving goal")
		}
	}
	return succeeded(s.logger, "SavingGoalService.Edit", id, err)
}

// Delete removes a saving goal. It reports false on any failure.
func (s *SavingGoalService) Delete(ctx context.Context, id int) bool {
	var err error
	if err = requireID("saving goal id", id); err == nil {
		if err = s.goals.DeleteSavingGoal(ctx, id); err != nil {
			err = translate(err, EntitySavingGoal, id, "could not delete saving goal")
		}
	}
	return succeeded(s.logger, "SavingGoalService.Delete", id, err)
}

func (s *SavingGoalService) enrichAll(ctx context.Context, goals []models.SavingGoal, userID int) ([]SavingGoalDTO, error) {
	if len(goals) == 0 {
		return nil, noneFound(EntitySavingGoal, userID)
	}
	// All goals share one owner, so one balance serves them all.
	saved, err := s.transactions.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]SavingGoalDTO, len(goals))
	for i, g := range goals {
		out[i] = newSavingGoalDTO(g, saved)
	}
	return out, nil
}

func newSavingGoalDTO(g models.SavingGoal, saved float64) SavingGoalDTO {
	return SavingGoalDTO{
		ID:          g.ID,
		Name:        g.Name,
		Target:      g.Target,
		AmountSaved: saved,
		Deadline:    g.Deadline,
		UserID:      g.UserID,
	}
}

// validateSavingGoal checks the raw name so the error echoes what the
// caller sent.
func validateSavingGoal(rawName string, g models.SavingGoal) error {
	if err := requireText("name", rawName); err != nil {
		return err
	}
	if err := requireNonNegative("target", g.Target); err != nil {
		return err
	}
	return requireID("user id", g.UserID)
}
