package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/testhelpers/mocks"
	"github.com/fitturk/backend/internal/types"
)

func TestGoalService(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newSvc := func() (*GoalService, *mocks.MockGoalStore) {
		store := new(mocks.MockGoalStore)
		svc := NewGoalService(store)
		svc.now = func() time.Time { return storeEpoch }
		return svc, store
	}

	t.Run("create", func(t *testing.T) {
		svc, store := newSvc()
		store.On("CreateGoal", ctx, mock.MatchedBy(func(g *model.Goal) bool {
			return g.UserID == userID.String() && g.Type == model.GoalType("weight") && g.Milestones != nil
		})).Return(nil).Once()

		goal, err := svc.CreateGoal(ctx, userID, &types.CreateGoalRequest{Title: "5 kilo ver", Type: "weight", TargetValue: 70, Unit: "kg"})
		require.NoError(t, err)
		assert.Equal(t, 70.0, goal.TargetValue)
		assert.False(t, goal.Completed)
		store.AssertExpectations(t)
	})

	t.Run("toggle stored goal", func(t *testing.T) {
		svc, store := newSvc()
		id := primitive.NewObjectID()
		store.On("SetGoalCompleted", ctx, userID.String(), id, true, storeEpoch).Return(nil).Once()

		legacy, err := svc.SetCompleted(ctx, userID, id.Hex(), true)
		require.NoError(t, err)
		assert.False(t, legacy)
		store.AssertExpectations(t)
	})

	t.Run("legacy id writes nothing", func(t *testing.T) {
		svc, store := newSvc()

		legacy, err := svc.SetCompleted(ctx, userID, "1712345678901", true)
		require.NoError(t, err)
		assert.True(t, legacy)
		store.AssertNotCalled(t, "SetGoalCompleted")
	})

	t.Run("unmatched id is a no-op", func(t *testing.T) {
		svc, store := newSvc()
		store.On("SetGoalCompleted", ctx, userID.String(), mock.Anything, false, storeEpoch).Return(model.ErrNotFound)

		legacy, err := svc.SetCompleted(ctx, userID, primitive.NewObjectID().Hex(), false)
		assert.NoError(t, err)
		assert.False(t, legacy)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, store := newSvc()
		store.On("SetGoalCompleted", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout"))

		_, err := svc.SetCompleted(ctx, userID, primitive.NewObjectID().Hex(), true)
		assert.Equal(t, KindInternal, KindOf(err))
	})

	t.Run("missing id", func(t *testing.T) {
		svc, _ := newSvc()
		_, err := svc.SetCompleted(ctx, userID, "", true)
		assert.Equal(t, KindValidation, KindOf(err))
	})
}
