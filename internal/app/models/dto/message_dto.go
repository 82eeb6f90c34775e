package dto

import (
	"time"

	"github.com/yigit/talentbridge/internal/app/models"
)

// MessageDirection tells whether the viewer sent or received a message
type MessageDirection string

const (
	DirectionSent     MessageDirection = "sent"
	DirectionReceived MessageDirection = "received"
)

// SendMessageRequest represents the compose form
type SendMessageRequest struct {
	Content string `form:"content" binding:"required"`
}

// ThreadMessage is a message as seen by one participant
type ThreadMessage struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	Direction MessageDirection
}

// IsSent is a template helper
func (m ThreadMessage) IsSent() bool {
	return m.Direction == DirectionSent
}

// ThreadResponse is the conversation between the viewer and a partner, oldest first
type ThreadResponse struct {
	Partner  *models.User
	Messages []ThreadMessage
}

// ToThreadMessage labels a message relative to viewerID
func ToThreadMessage(m models.Message, viewerID int64) ThreadMessage {
	direction := DirectionReceived
	if m.SenderID == viewerID {
		direction = DirectionSent
	}
	return ThreadMessage{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Direction: direction,
	}
}
