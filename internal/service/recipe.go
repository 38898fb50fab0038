package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/types"
)

const (
	recipeCacheTTL        = 5 * time.Minute
	recipeCacheVersionKey = "recipes:version"
	recipeImageURLTTL     = time.Hour
)

// RecipeService handles recipe operations
type RecipeService struct {
	store  RecipeStore
	images ImageStore
	cache  *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance. images and cache
// are optional.
func NewRecipeService(store RecipeStore, images ImageStore, cache *redis.Client, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		store:  store,
		images: images,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// SearchRecipes matches q case-insensitively against title, description and
// ingredients. Results are ordered by title then id so pages are stable.
func (s *RecipeService) SearchRecipes(ctx context.Context, query types.RecipeSearchQuery) (*types.RecipePage, error) {
	query.Normalize()
	query.Query = strings.TrimSpace(query.Query)

	cacheKey := s.searchCacheKey(ctx, query)
	if page, ok := s.cachedPage(ctx, cacheKey); ok {
		return page, nil
	}

	skip := int64(query.Page-1) * int64(query.PageSize)
	items, total, err := s.store.SearchRecipes(ctx, query.Query, skip, int64(query.PageSize))
	if err != nil {
		return nil, Internal("failed to search recipes", err)
	}
	if items == nil {
		items = []model.Recipe{}
	}

	page := &types.RecipePage{Items: items, Page: query.Page, PageSize: query.PageSize, Total: total}
	s.storePage(ctx, cacheKey, page)
	return page, nil
}

// GetRecipe loads one recipe. Uploaded images are returned as short-lived
// signed URLs.
func (s *RecipeService) GetRecipe(ctx context.Context, rawID string) (*model.Recipe, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, NotFound("recipe not found")
	}
	recipe, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, NotFound("recipe not found")
		}
		return nil, Internal("failed to load recipe", err)
	}

	if recipe.ImageKey != "" && s.images != nil {
		url, err := s.images.GeneratePresignedURL(ctx, recipe.ImageKey, recipeImageURLTTL)
		if err != nil {
			s.logger.Warn("failed to sign recipe image", zap.String("recipe_id", rawID), zap.Error(err))
		} else {
			recipe.ImageURL = url
		}
	}
	return recipe, nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	now := s.now().UTC()
	category := req.Category
	if category == nil {
		category = []string{}
	}
	recipe := &model.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Category:     category,
		Macros: model.Macros{
			Calories: req.Calories,
			Protein:  req.Protein,
			Fat:      req.Fat,
			Carbs:    req.Carbs,
		},
		AuthorID:  userID.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, Internal("failed to create recipe", err)
	}
	s.InvalidateSearches(ctx)
	return recipe, nil
}

// UploadImage stores an image for a recipe the caller authored and returns
// a signed URL for it.
func (s *RecipeService) UploadImage(ctx context.Context, userID uuid.UUID, rawID, contentType string, data []byte) (string, error) {
	if s.images == nil {
		return "", Unavailable("image uploads are not configured")
	}

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return "", NotFound("recipe not found")
	}
	recipe, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", NotFound("recipe not found")
		}
		return "", Internal("failed to load recipe", err)
	}
	if recipe.AuthorID != userID.String() {
		return "", Forbidden("only the author can change this recipe")
	}

	ext, err := ValidateImage(contentType, data)
	if err != nil {
		return "", err
	}

	key := RecipeImageKey(rawID, ext)
	if err := s.images.PutObject(ctx, key, contentType, data); err != nil {
		return "", Internal("failed to upload image", err)
	}
	if err := s.store.SetRecipeImage(ctx, id, key, s.now().UTC()); err != nil {
		return "", Internal("failed to save image reference", err)
	}
	s.InvalidateSearches(ctx)

	url, err := s.images.GeneratePresignedURL(ctx, key, recipeImageURLTTL)
	if err != nil {
		return "", Internal("failed to sign image URL", err)
	}
	return url, nil
}

// Search pages are cached under the current catalog version; every write
// bumps the version so stale pages simply expire.
func (s *RecipeService) searchCacheKey(ctx context.Context, q types.RecipeSearchQuery) string {
	if s.cache == nil {
		return ""
	}
	version, err := s.cache.Get(ctx, recipeCacheVersionKey).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		s.logger.Warn("recipe cache unavailable", zap.Error(err))
		return ""
	}
	return fmt.Sprintf("recipes:search:%s:%d:%d:%s", version, q.Page, q.PageSize, strings.ToLower(q.Query))
}

func (s *RecipeService) cachedPage(ctx context.Context, key string) (*types.RecipePage, bool) {
	if key == "" {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("recipe cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var page types.RecipePage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (s *RecipeService) storePage(ctx context.Context, key string, page *types.RecipePage) {
	if key == "" {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, recipeCacheTTL).Err(); err != nil {
		s.logger.Warn("recipe cache write failed", zap.Error(err))
	}
}

// InvalidateSearches bumps the catalog version so cached search pages are
// no longer read.
func (s *RecipeService) InvalidateSearches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, recipeCacheVersionKey).Err(); err != nil {
		s.logger.Warn("recipe cache invalidation failed", zap.Error(err))
	}
}
