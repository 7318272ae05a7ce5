package handlers

import (
	"github.com/gin-gonic/gin"
	"penpal/middleware"
	"penpal/store"
	"penpal/utils"
)

type MessageHandler struct {
	messages *store.MessageStore
}

func NewMessageHandler(messages *store.MessageStore) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type SendMessageBody struct {
	Body string `json:"body" binding:"required,max=4000"`
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	receiverID := c.Param("user_id")

	var req SendMessageBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), userID, receiverID, req.Body)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, msg)
}

// GetHistory returns the full conversation with the given user, oldest
// first. There is no friendship check on read.
func (h *MessageHandler) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	otherID := c.Param("user_id")

	messages, err := h.messages.History(c.Request.Context(), userID, otherID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, messages)
}
