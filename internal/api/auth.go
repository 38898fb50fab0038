package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitturk/backend/internal/middleware"
	"github.com/fitturk/backend/internal/models"
	"github.com/fitturk/backend/internal/service"
	"github.com/fitturk/backend/internal/types"
)

type AuthHandler struct {
	authService   service.IAuthService
	secureCookie  bool
	sessionTTL    time.Duration
	loginThrottle gin.HandlerFunc
}

// NewAuthHandler creates an auth handler. loginThrottle may be nil.
func NewAuthHandler(authService service.IAuthService, secureCookie bool, sessionTTL time.Duration, loginThrottle gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookie:  secureCookie,
		sessionTTL:    sessionTTL,
		loginThrottle: loginThrottle,
	}
}

// RegisterRoutes mounts the public account routes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)

	login := []gin.HandlerFunc{h.Login}
	if h.loginThrottle != nil {
		login = append([]gin.HandlerFunc{h.loginThrottle}, login...)
	}
	router.POST("/login", login...)
	router.POST("/logout", h.Logout)
	router.GET("/session", middleware.OptionalAuthMiddleware(h.authService), h.Session)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.Register(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.OKResponse{OK: true})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.sessionTTL.Seconds()))
	c.JSON(http.StatusOK, types.LoginResponse{
		OK:    true,
		Token: token,
		User:  sessionUser(user),
	})
}

// Logout clears the session cookie. Bearer tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, types.OKResponse{OK: true})
}

func (h *AuthHandler) Session(c *gin.Context) {
	unauthenticated := types.SessionResponse{Status: "unauthenticated"}

	if _, exists := c.Get("user_id"); !exists {
		c.JSON(http.StatusOK, unauthenticated)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if service.KindOf(err) == service.KindNotFound {
			c.JSON(http.StatusOK, unauthenticated)
			return
		}
		respondError(c, err)
		return
	}

	u := sessionUser(user)
	c.JSON(http.StatusOK, types.SessionResponse{Status: "authenticated", User: &u})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", h.secureCookie, true)
}

func sessionUser(user *models.User) types.SessionUser {
	return types.SessionUser{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}
}
