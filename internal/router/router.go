package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitturk/backend/internal/api"
	"github.com/fitturk/backend/internal/middleware"
	"github.com/fitturk/backend/internal/service"
)

// Dependencies are the services and settings the HTTP layer is built from.
type Dependencies struct {
	Logger *zap.Logger

	AuthService     service.IAuthService
	ProfileService  service.IProfileService
	ChatService     service.IChatService
	NoteService     service.INoteService
	GoalService     service.IGoalService
	MealPlanService service.IMealPlanService
	RecipeService   service.IRecipeService

	RateLimiter *middleware.RateLimiter
	// LoginThrottle is optional.
	LoginThrottle *middleware.LoginThrottle

	AppURL         string
	CORSOrigins    []string
	TrustedProxies []string
	SecureCookies  bool
	SessionTTL     time.Duration
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	api.UseJSONFieldNames()

	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, err
	}

	router.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.SecurityHeaders(),
		middleware.CORS(deps.CORSOrigins, deps.AppURL),
	)

	// Health check endpoint (no rate limit, no auth)
	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)

	v1 := router.Group("/api")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	var loginThrottle gin.HandlerFunc
	if deps.LoginThrottle != nil {
		loginThrottle = deps.LoginThrottle.Middleware()
	}
	api.NewAuthHandler(deps.AuthService, deps.SecureCookies, deps.SessionTTL, loginThrottle).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthService))
	{
		api.NewProfileHandler(deps.ProfileService).RegisterRoutes(protected)
		api.NewChatHandler(deps.ChatService).RegisterRoutes(protected)
		api.NewNoteHandler(deps.NoteService, deps.AppURL).RegisterRoutes(protected)
		api.NewGoalHandler(deps.GoalService, deps.AppURL).RegisterRoutes(protected)
		api.NewMealPlanHandler(deps.MealPlanService).RegisterRoutes(protected)
		api.NewRecipeHandler(deps.RecipeService).RegisterRoutes(protected)
	}

	router.NoRoute(middleware.NotFound())

	return router, nil
}
