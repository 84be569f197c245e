package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinet/internal/domain/message"
	"cabinet/internal/infrastructure/persistence/models"
)

func TestMessageMapper_RejectsDoubleTarget(t *testing.T) {
	recipient, conversation := "u2", "g1"

	_, err := NewMessageMapper().ToEntity(&models.CabinetMessageModel{
		ID:             "m1",
		CabinetID:      "c1",
		SenderID:       "u1",
		RecipientID:    &recipient,
		ConversationID: &conversation,
		Message:        "hi",
		CreatedAt:      time.Now(),
	})

	assert.Error(t, err)
}

func TestMessageMapper_TargetColumns(t *testing.T) {
	mapper := NewMessageMapper()
	entity, err := message.NewMessage("c1", "u1", message.Group("g1"), "hello")
	require.NoError(t, err)

	model := mapper.ToModel(entity)
	assert.Nil(t, model.RecipientID)
	require.NotNil(t, model.ConversationID)
	assert.Equal(t, "g1", *model.ConversationID)

	back, err := mapper.ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, message.Group("g1"), back.Target())
}

func TestNotificationMapper_NullPayload(t *testing.T) {
	entity, err := NewNotificationMapper().ToEntity(&models.CabinetNotificationModel{
		ID:          "n1",
		CabinetID:   "c1",
		RecipientID: "u1",
		Title:       "Nouveau message",
		Type:        "cabinet_message",
		Payload:     []byte("null"),
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.Nil(t, entity.Payload())
	assert.Empty(t, entity.ActorID())
}
