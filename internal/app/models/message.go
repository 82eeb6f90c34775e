package models

import "time"

// Message is a direct message between two distinct users
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    int64     `json:"senderId" db:"sender_id"`
	RecipientID int64     `json:"recipientId" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Conversation is one entry of a user's inbox: the partner and the latest message exchanged
type Conversation struct {
	Partner     User    `json:"partner"`
	LastMessage Message `json:"lastMessage"`
}
