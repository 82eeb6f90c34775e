package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/events"
	"github.com/yigit/talentbridge/internal/pkg/validation"
)

// MessageService defines the interface for direct messaging
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID int64, content string) (*models.Message, error)
	Conversations(ctx context.Context, userID int64) ([]models.Conversation, error)
	Thread(ctx context.Context, userID, partnerID int64) (*dto.ThreadResponse, error)
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	messageRepo *repositories.MessageRepository
	userRepo    *repositories.UserRepository
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo *repositories.MessageRepository,
	userRepo *repositories.UserRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// partner loads the other participant, rejecting self conversations
func (s *messageServiceImpl) partner(ctx context.Context, userID, partnerID int64) (*models.User, error) {
	if userID == partnerID {
		return nil, apperrors.ErrSelfMessage
	}
	user, err := s.userRepo.GetUserByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrRecipientUnknown
		}
		return nil, err
	}
	return user, nil
}

// Send stores a message between two distinct existing users
func (s *messageServiceImpl) Send(ctx context.Context, senderID, recipientID int64, content string) (*models.Message, error) {
	if _, err := s.partner(ctx, senderID, recipientID); err != nil {
		return nil, err
	}

	body, err := validation.NormalizeMessage(content)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     body,
	}
	if _, err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("messageID", msg.ID).Int64("senderID", senderID).Int64("recipientID", recipientID).Msg("Message sent")
	events.PublishAsync(s.publisher, events.MessageSent, map[string]any{
		"messageId":   msg.ID,
		"senderId":    senderID,
		"recipientId": recipientID,
	})
	return msg, nil
}

// Conversations lists the user's conversation partners, most recent first
func (s *messageServiceImpl) Conversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	return s.messageRepo.ListConversations(ctx, userID)
}

// Thread returns the messages between the user and a partner in ascending time order
func (s *messageServiceImpl) Thread(ctx context.Context, userID, partnerID int64) (*dto.ThreadResponse, error) {
	partner, err := s.partner(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListBetween(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}

	thread := make([]dto.ThreadMessage, 0, len(messages))
	for _, m := range messages {
		thread = append(thread, dto.ToThreadMessage(m, userID))
	}
	return &dto.ThreadResponse{
		Partner:  partner,
		Messages: thread,
	}, nil
}
