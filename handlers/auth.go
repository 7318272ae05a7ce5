package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"penpal/config"
	"penpal/middleware"
	"penpal/models"
	"penpal/store"
	"penpal/utils"
)

type AuthHandler struct {
	users *store.UserStore
	cfg   *config.Config
}

func NewAuthHandler(users *store.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.BcryptCost)
	if err != nil {
		utils.InternalError(c, "failed to hash password")
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Username, string(hashedPassword))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{Token: token, User: *user.ToResponse()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.FindByName(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Unauthorized(c, "invalid username or password")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{Token: token, User: *user.ToResponse()})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	userID := middleware.GetUserID(c)

	token, err := utils.GenerateToken(userID, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, gin.H{"token": token})
}
