package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fitturk/backend/config"
	"github.com/fitturk/backend/internal/database"
	"github.com/fitturk/backend/internal/docstore"
	"github.com/fitturk/backend/internal/logging"
	"github.com/fitturk/backend/internal/model"
	"github.com/fitturk/backend/internal/service"
)

// RecipeData is one entry of the seed file.
type RecipeData struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     int      `json:"calories"`
	Protein      float64  `json:"protein"`
	Fat          float64  `json:"fat"`
	Carbs        float64  `json:"carbs"`
	Category     []string `json:"category"`
}

func main() {
	file := flag.String("file", "data/recipes.json", "path to the recipe seed file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	recipes, err := loadRecipes(*file, time.Now().UTC())
	if err != nil {
		logger.Fatal("failed to read seed file", zap.String("file", *file), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoDB, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() { _ = mongoDB.Client().Disconnect(context.Background()) }()

	store := docstore.NewRecipeStore(mongoDB)
	n, err := store.ReplaceAll(ctx, recipes)
	if err != nil {
		logger.Fatal("failed to seed recipes", zap.Error(err))
	}

	if cfg.RedisURL != "" {
		cache, err := database.NewRedisClient(cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("could not reach redis, cached searches expire on their own", zap.Error(err))
		} else {
			service.NewRecipeService(store, nil, cache, logger).InvalidateSearches(ctx)
			_ = cache.Close()
		}
	}

	logger.Info("seeded recipes", zap.Int("count", n))
}

func loadRecipes(path string, now time.Time) ([]model.Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data []RecipeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(data))
	for i, r := range data {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return nil, fmt.Errorf("recipe %d has no title", i)
		}
		recipes = append(recipes, model.Recipe{
			Title:        title,
			Description:  r.Description,
			Ingredients:  nonNil(r.Ingredients),
			Instructions: nonNil(r.Instructions),
			Category:     nonNil(r.Category),
			Macros: model.Macros{
				Calories: r.Calories,
				Protein:  r.Protein,
				Fat:      r.Fat,
				Carbs:    r.Carbs,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return recipes, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
