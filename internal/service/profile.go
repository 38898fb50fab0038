package service

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fitturk/backend/internal/crypto"
	"github.com/fitturk/backend/internal/models"
	"github.com/fitturk/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db     *gorm.DB
	enc    *crypto.Encryptor
	logger *zap.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, enc *crypto.Encryptor, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		db:     db,
		enc:    enc,
		logger: logger,
	}
}

// GetProfile returns the decrypted profile with its derived metrics.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := s.decryptProfile(user)
	return &types.ProfileResponse{Profile: profile, Metrics: ComputeMetrics(profile.PersonalInfo)}, nil
}

// UpdateProfile replaces the sections present in req and stores the result.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.ProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := s.decryptProfile(user)
	if req.PersonalInfo != nil {
		profile.PersonalInfo = *req.PersonalInfo
	}
	if req.HealthInfo != nil {
		profile.HealthInfo = *req.HealthInfo
	}
	if req.Preferences != nil {
		profile.Preferences = *req.Preferences
	}

	sealed, err := s.enc.EncryptJSON(profile)
	if err != nil {
		return nil, Internal("failed to encrypt profile", err)
	}
	if err := s.db.WithContext(ctx).Model(user).Update("profile", sealed).Error; err != nil {
		return nil, Internal("failed to update profile", err)
	}

	return &types.ProfileResponse{Profile: profile, Metrics: ComputeMetrics(profile.PersonalInfo)}, nil
}

func (s *ProfileService) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("user not found")
		}
		return nil, Internal("failed to load user", err)
	}
	return &user, nil
}

// decryptProfile never fails: a blob that cannot be opened is reported and
// treated as an empty profile.
func (s *ProfileService) decryptProfile(user *models.User) types.Profile {
	var profile types.Profile
	if user.Profile == "" {
		return profile
	}
	if err := s.enc.DecryptJSON(user.Profile, &profile); err != nil {
		s.logger.Warn("stored profile could not be decrypted",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		sentry.CaptureException(err)
		return types.Profile{}
	}
	return profile
}
