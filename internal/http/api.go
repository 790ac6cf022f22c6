package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fitfeed/internal/auth"
	"fitfeed/internal/domain"
	"fitfeed/internal/service"
	"fitfeed/internal/storage"
)

const (
	maxAvatarBytes   = 5 << 20
	avatarURLExpires = 15 * time.Minute
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	follows   service.FollowService
	issuer    *auth.TokenIssuer
	avatars   storage.Service
	bucket    string
	keyPrefix string
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, follows service.FollowService, issuer *auth.TokenIssuer, avatars storage.Service, bucket, keyPrefix string, logger *logrus.Logger) *Handler {
	return &Handler{
		users:     users,
		follows:   follows,
		issuer:    issuer,
		avatars:   avatars,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	user := api.Group("/user")
	user.POST("/signup", h.signup)
	user.POST("/login", h.login)
	user.GET("/avatar/:userId", h.getAvatar)

	protected := user.Group("")
	protected.Use(h.RequireAuth())
	{
		protected.GET("/", h.listUsers)
		protected.GET("/:userId", h.getUser)
		protected.PUT("/editusername", h.editUsername)
		protected.POST("/follow/:followeeId", h.follow)
		protected.POST("/unfollow/:followeeId", h.unfollow)
		protected.GET("/followers/:userId", h.followers)
		protected.GET("/following/:userId", h.following)
		protected.PUT("/avatar", h.uploadAvatar)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type editUsernameRequest struct {
	NewUsername string `json:"newUsername"`
}

// UserResponse mirrors the document-store field names the clients expect.
type UserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type profileResponse struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.Signup(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":    user.Email,
		"username": user.Username,
		"token":    token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":    user.Email,
		"username": user.Username,
		"token":    token,
	})
}

func (h *Handler) editUsername(c *gin.Context) {
	var req editUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.EditUsername(c.Request.Context(), currentUserID(c), req.NewUsername)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": UserResponse{ID: user.ID, Username: user.Username}})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = UserResponse{ID: users[i].ID, Username: users[i].Username, Email: users[i].Email}
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) getUser(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	followers, following, err := h.follows.Counts(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Followers: followers,
		Following: following,
	}})
}

func (h *Handler) follow(c *gin.Context) {
	followerID := currentUserID(c)
	if followerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrUserNotFound.Message})
		return
	}
	followeeID := c.Param("followeeId")
	if err := h.follows.Follow(c.Request.Context(), followerID, followeeID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followed": followeeID})
}

func (h *Handler) unfollow(c *gin.Context) {
	followerID := currentUserID(c)
	if followerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrUserNotFound.Message})
		return
	}
	followeeID := c.Param("followeeId")
	if err := h.follows.Unfollow(c.Request.Context(), followerID, followeeID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unfollowed": followeeID})
}

func (h *Handler) followers(c *gin.Context) {
	users, err := h.follows.Followers(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": usersToResponse(users)})
}

func (h *Handler) following(c *gin.Context) {
	users, err := h.follows.Following(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": usersToResponse(users)})
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	if h.avatars == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "avatar storage is not configured"})
		return
	}
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrUserNotFound.Message})
		return
	}

	key := h.keyPrefix + "/" + userID
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)
	if err := h.avatars.Put(c.Request.Context(), h.bucket, key, body, c.ContentType()); err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.users.SetAvatarKey(c.Request.Context(), userID, key); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": key})
}

func (h *Handler) getAvatar(c *gin.Context) {
	if h.avatars == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "avatar storage is not configured"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if user.AvatarKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar not set"})
		return
	}

	url, err := h.avatars.GetObjectURL(c.Request.Context(), h.bucket, user.AvatarKey, avatarURLExpires)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// writeError maps a failure to its HTTP shape: domain errors become a
// 400 with the exact message (matching the original controller),
// anything else is an infrastructure failure hidden behind a 503.
func (h *Handler) writeError(c *gin.Context, err error) {
	if derr, ok := domain.IsDomain(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": derr.Message})
		return
	}
	h.logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
}

func usersToResponse(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = UserResponse{ID: users[i].ID, Username: users[i].Username}
	}
	return resp
}
