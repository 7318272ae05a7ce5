package handlers

import (
	"github.com/gin-gonic/gin"
	"penpal/middleware"
	"penpal/store"
	"penpal/utils"
)

type FriendHandler struct {
	friends *store.FriendStore
}

func NewFriendHandler(friends *store.FriendStore) *FriendHandler {
	return &FriendHandler{friends: friends}
}

type SendRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *FriendHandler) GetFriends(c *gin.Context) {
	userID := middleware.GetUserID(c)

	friends, err := h.friends.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, friends)
}

func (h *FriendHandler) GetReceivedRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	requests, err := h.friends.ListReceivedRequests(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, requests)
}

func (h *FriendHandler) GetSentRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	requests, err := h.friends.ListSentRequests(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, requests)
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.friends.SendRequest(c.Request.Context(), userID, req.UserID); err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "friend request sent"})
}

func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	requesterID := c.Param("user_id")

	if err := h.friends.AcceptRequest(c.Request.Context(), userID, requesterID); err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "friend request accepted"})
}

func (h *FriendHandler) RejectRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	requesterID := c.Param("user_id")

	if err := h.friends.RejectRequest(c.Request.Context(), userID, requesterID); err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "friend request rejected"})
}

func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("user_id")

	if err := h.friends.RemoveFriendship(c.Request.Context(), userID, friendID); err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, nil)
}
