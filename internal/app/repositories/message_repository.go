package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/db"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
	"github.com/yigit/talentbridge/internal/pkg/logger"
)

var messageColumns = []string{"m.id", "m.sender_id", "m.recipient_id", "m.content", "m.created_at"}

// conversationsQuery picks, per partner, the newest message exchanged with userID.
// Message ids grow with insertion time, so MAX(id) identifies the latest one.
const conversationsQuery = `
SELECT u.id, u.username, u.password_hash, u.role_type, u.created_at, u.updated_at, u.last_login_at,
       m.id, m.sender_id, m.recipient_id, m.content, m.created_at
FROM (
    SELECT p.partner_id, MAX(p.id) AS last_id
    FROM (
        SELECT recipient_id AS partner_id, id FROM messages WHERE sender_id = ?
        UNION ALL
        SELECT sender_id AS partner_id, id FROM messages WHERE recipient_id = ?
    ) p
    GROUP BY p.partner_id
) t
JOIN messages m ON m.id = t.last_id
JOIN users u ON u.id = t.partner_id
ORDER BY m.created_at DESC, m.id DESC`

// MessageRepository handles direct message rows
type MessageRepository struct {
	db *db.Database
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(database *db.Database) *MessageRepository {
	return &MessageRepository{db: database}
}

// Create inserts a message and sets its ID and timestamp
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) (int64, error) {
	now := helpers.NowUTC()

	query, args, err := r.db.Builder.Insert("messages").
		Columns("sender_id", "recipient_id", "content", "created_at").
		Values(msg.SenderID, msg.RecipientID, msg.Content, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create message query: %w", err)
	}

	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&msg.ID); err != nil {
		logger.Error().Err(err).
			Int64("senderID", msg.SenderID).
			Int64("recipientID", msg.RecipientID).
			Msg("Error creating message")
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	msg.CreatedAt = now
	return msg.ID, nil
}

// ListBetween returns every message exchanged by two users in ascending time order
func (r *MessageRepository) ListBetween(ctx context.Context, userA, userB int64) ([]models.Message, error) {
	query, args, err := r.db.Builder.Select(messageColumns...).
		From("messages m").
		Where(squirrel.Or{
			squirrel.Eq{"m.sender_id": userA, "m.recipient_id": userB},
			squirrel.Eq{"m.sender_id": userB, "m.recipient_id": userA},
		}).
		OrderBy("m.created_at", "m.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return messages, nil
}

// ListConversations returns one entry per conversation partner of userID,
// most recently active first.
func (r *MessageRepository) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	rows, err := r.db.DB.QueryContext(ctx, r.db.Rebind(conversationsQuery), userID, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var (
			conv        models.Conversation
			lastLoginAt sql.NullTime
		)
		err := rows.Scan(
			&conv.Partner.ID,
			&conv.Partner.Username,
			&conv.Partner.PasswordHash,
			&conv.Partner.RoleType,
			&conv.Partner.CreatedAt,
			&conv.Partner.UpdatedAt,
			&lastLoginAt,
			&conv.LastMessage.ID,
			&conv.LastMessage.SenderID,
			&conv.LastMessage.RecipientID,
			&conv.LastMessage.Content,
			&conv.LastMessage.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		if lastLoginAt.Valid {
			conv.Partner.LastLoginAt = &lastLoginAt.Time
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}
	return conversations, nil
}
