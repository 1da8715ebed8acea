package services

import (
	"context"
	"fmt"

	"github.com/wroger/gymtrack/internal/client/api"
	"github.com/wroger/gymtrack/internal/client/models"
)

// TrainingService exposes the read-only exercise catalogue and the
// user's workout history.
type TrainingService struct {
	client api.Client
}

func NewTrainingService(client api.Client) *TrainingService {
	return &TrainingService{client: client}
}

func (s *TrainingService) Groups(ctx context.Context) ([]string, error) {
	groups, err := s.client.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}
	return groups, nil
}

func (s *TrainingService) ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error) {
	exercises, err := s.client.ExercisesByGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("loading exercises for %s: %w", group, err)
	}
	return exercises, nil
}

func (s *TrainingService) Exercise(ctx context.Context, id int) (*models.Exercise, error) {
	exercise, err := s.client.Exercise(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading exercise %d: %w", id, err)
	}
	return exercise, nil
}

func (s *TrainingService) History(ctx context.Context) ([]models.HistoryDay, error) {
	history, err := s.client.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return history, nil
}
