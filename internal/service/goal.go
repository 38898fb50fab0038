package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/types"
)

type GoalService struct {
	store GoalStore
	now   func() time.Time
}

var _ IGoalService = (*GoalService)(nil)

func NewGoalService(store GoalStore) *GoalService {
	return &GoalService{store: store, now: time.Now}
}

func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	goals, err := s.store.ListGoals(ctx, userID.String())
	if err != nil {
		return nil, Internal("failed to list goals", err)
	}
	if goals == nil {
		goals = []model.Goal{}
	}
	return goals, nil
}

func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req *types.CreateGoalRequest) (*model.Goal, error) {
	now := s.now().UTC()
	milestones := req.Milestones
	if milestones == nil {
		milestones = []model.Milestone{}
	}
	goal := &model.Goal{
		UserID:       userID.String(),
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Deadline:     req.Deadline,
		Milestones:   milestones,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, Internal("failed to create goal", err)
	}
	return goal, nil
}

// SetCompleted toggles completion. Ids that are not document ids come from
// goals that only ever lived on the client; they are acknowledged without a
// write.
func (s *GoalService) SetCompleted(ctx context.Context, userID uuid.UUID, rawID string, completed bool) (bool, error) {
	if rawID == "" {
		return false, Validation("missing id", map[string]string{"_id": "required"})
	}
	if !primitive.IsValidObjectID(rawID) {
		return true, nil
	}
	id, _ := primitive.ObjectIDFromHex(rawID)

	err := s.store.SetGoalCompleted(ctx, userID.String(), id, completed, s.now().UTC())
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return false, Internal("failed to update goal", err)
	}
	return false, nil
}
