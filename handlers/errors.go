package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"penpal/store"
	"penpal/utils"
)

// respondStoreError maps the store's error taxonomy onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.NotFound(c, "not found")
	case errors.Is(err, store.ErrSelfReference):
		utils.BadRequest(c, "cannot target yourself")
	case errors.Is(err, store.ErrDuplicateRequest):
		utils.Conflict(c, "friend request already sent")
	case errors.Is(err, store.ErrDuplicateName):
		utils.Conflict(c, "username already exists")
	case errors.Is(err, store.ErrAlreadyFriends):
		utils.Conflict(c, "already friends")
	case errors.Is(err, store.ErrNotFriends):
		utils.Forbidden(c, "you can only message friends")
	default:
		logrus.WithError(err).Error("store operation failed")
		utils.InternalError(c, "storage unavailable")
	}
}
