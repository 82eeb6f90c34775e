package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/events"
)

func TestMessageService_ThreadVisibleToBothParticipants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "amy", models.RoleCandidate)
	b := env.register(t, "bill", models.RoleRecruiter)

	_, err := env.messages.Send(ctx, a.ID, b.ID, "  Hello Bill  ")
	require.NoError(t, err)
	_, err = env.messages.Send(ctx, b.ID, a.ID, "Hi Amy")
	require.NoError(t, err)

	threadA, err := env.messages.Thread(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, threadA.Messages, 2)
	assert.Equal(t, "bill", threadA.Partner.Username)
	assert.Equal(t, "Hello Bill", threadA.Messages[0].Content)
	assert.Equal(t, dto.DirectionSent, threadA.Messages[0].Direction)
	assert.Equal(t, dto.DirectionReceived, threadA.Messages[1].Direction)
	assert.False(t, threadA.Messages[1].CreatedAt.Before(threadA.Messages[0].CreatedAt))

	threadB, err := env.messages.Thread(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, threadB.Messages, 2)
	assert.Equal(t, dto.DirectionReceived, threadB.Messages[0].Direction)
	assert.Equal(t, dto.DirectionSent, threadB.Messages[1].Direction)

	for _, user := range []*models.User{a, b} {
		convs, err := env.messages.Conversations(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, convs, 1)
		assert.Equal(t, "Hi Amy", convs[0].LastMessage.Content)
	}

	assert.Eventually(t, func() bool { return env.publisher.has(events.MessageSent) }, time.Second, 10*time.Millisecond)
}

func TestMessageService_SendRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "cara", models.RoleCandidate)
	b := env.register(t, "dan", models.RoleCandidate)

	_, err := env.messages.Send(ctx, a.ID, a.ID, "me")
	assert.ErrorIs(t, err, apperrors.ErrSelfMessage)

	_, err = env.messages.Send(ctx, a.ID, 4242, "anyone?")
	assert.ErrorIs(t, err, apperrors.ErrRecipientUnknown)

	_, err = env.messages.Send(ctx, a.ID, b.ID, "   ")
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	_, err = env.messages.Send(ctx, a.ID, b.ID, strings.Repeat("x", 5001))
	assert.ErrorIs(t, err, apperrors.ErrMessageTooLong)

	_, err = env.messages.Thread(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfMessage)

	convs, err := env.messages.Conversations(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, convs)
}
