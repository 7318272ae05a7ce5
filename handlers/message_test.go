package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"penpal/models"
)

func (e *testEnv) befriend(t *testing.T, a, b string) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, e.friends.SendRequest(ctx, a, b))
	require.NoError(t, e.friends.AcceptRequest(ctx, b, a))
}

func TestSendMessageRequiresFriendship(t *testing.T) {
	env := newTestEnv(t)
	h := NewMessageHandler(env.messages)

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	c, w := jsonContext(t, alice.ID, SendMessageBody{Body: "hi"}, gin.Params{{Key: "user_id", Value: bob.ID}})
	h.SendMessage(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSendMessageAndHistory(t *testing.T) {
	env := newTestEnv(t)
	h := NewMessageHandler(env.messages)

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.befriend(t, alice.ID, bob.ID)

	c, w := jsonContext(t, alice.ID, SendMessageBody{Body: "hi"}, gin.Params{{Key: "user_id", Value: bob.ID}})
	h.SendMessage(c)
	require.Equal(t, http.StatusOK, w.Code)

	var sent models.Message
	decodeData(t, w, &sent)
	assert.Equal(t, "hi", sent.Body)
	assert.Equal(t, alice.ID, sent.SenderID)

	// Both parties read the same history.
	for _, caller := range []string{alice.ID, bob.ID} {
		other := bob.ID
		if caller == bob.ID {
			other = alice.ID
		}
		c, w = jsonContext(t, caller, nil, gin.Params{{Key: "user_id", Value: other}})
		h.GetHistory(c)
		require.Equal(t, http.StatusOK, w.Code)

		var history []models.Message
		decodeData(t, w, &history)
		require.Len(t, history, 1)
		assert.Equal(t, "hi", history[0].Body)
	}
}

func TestSendEmptyMessageRejected(t *testing.T) {
	env := newTestEnv(t)
	h := NewMessageHandler(env.messages)

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.befriend(t, alice.ID, bob.ID)

	c, w := jsonContext(t, alice.ID, SendMessageBody{Body: ""}, gin.Params{{Key: "user_id", Value: bob.ID}})
	h.SendMessage(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
