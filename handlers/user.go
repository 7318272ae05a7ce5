package handlers

import (
	"github.com/gin-gonic/gin"
	"penpal/middleware"
	"penpal/store"
	"penpal/utils"
)

type UserHandler struct {
	users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, user.ToResponse())
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)

	users, err := h.users.List(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, users)
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "search query is required")
		return
	}

	userID := middleware.GetUserID(c)

	users, err := h.users.Search(c.Request.Context(), userID, query)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, users)
}
