package service

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitturk/backend/internal/crypto"
	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/types"
)

// MealPlanService stores weekly plan entries with their details encrypted.
type MealPlanService struct {
	store  MealPlanStore
	enc    *crypto.Encryptor
	logger *zap.Logger
	now    func() time.Time
}

var _ IMealPlanService = (*MealPlanService)(nil)

func NewMealPlanService(store MealPlanStore, enc *crypto.Encryptor, logger *zap.Logger) *MealPlanService {
	return &MealPlanService{store: store, enc: enc, logger: logger, now: time.Now}
}

// ListEntries skips entries whose payload cannot be decrypted.
func (s *MealPlanService) ListEntries(ctx context.Context, userID uuid.UUID) ([]types.MealPlanEntry, error) {
	stored, err := s.store.ListMealPlans(ctx, userID.String())
	if err != nil {
		return nil, Internal("failed to list meal plans", err)
	}

	entries := make([]types.MealPlanEntry, 0, len(stored))
	for _, doc := range stored {
		var item types.MealPlanItem
		if err := s.enc.DecryptJSON(doc.Payload, &item); err != nil {
			s.logger.Warn("meal plan entry could not be decrypted",
				zap.String("user_id", doc.UserID),
				zap.String("entry_id", doc.ID.Hex()),
				zap.Error(err),
			)
			sentry.CaptureException(err)
			continue
		}
		entries = append(entries, toMealPlanEntry(doc, item))
	}
	return entries, nil
}

func (s *MealPlanService) AddEntry(ctx context.Context, userID uuid.UUID, item *types.MealPlanItem) (*types.MealPlanEntry, error) {
	payload, err := s.enc.EncryptJSON(item)
	if err != nil {
		return nil, Internal("failed to encrypt meal plan", err)
	}

	now := s.now().UTC()
	doc := &model.MealPlanEntry{
		UserID:    userID.String(),
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateMealPlan(ctx, doc); err != nil {
		return nil, Internal("failed to save meal plan", err)
	}

	entry := toMealPlanEntry(*doc, *item)
	return &entry, nil
}

func (s *MealPlanService) DeleteEntry(ctx context.Context, userID uuid.UUID, rawID string) error {
	id, err := parseDocumentID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMealPlan(ctx, userID.String(), id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return Internal("failed to delete meal plan", err)
	}
	return nil
}

func toMealPlanEntry(doc model.MealPlanEntry, item types.MealPlanItem) types.MealPlanEntry {
	return types.MealPlanEntry{
		ID:           doc.ID.Hex(),
		MealPlanItem: item,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
