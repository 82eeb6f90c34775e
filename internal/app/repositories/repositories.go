package repositories

import (
	"github.com/yigit/talentbridge/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	SessionRepository     *SessionRepository
	DocumentRepository    *DocumentRepository
	JobRepository         *JobRepository
	ApplicationRepository *ApplicationRepository
	MessageRepository     *MessageRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.Database) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(database),
		SessionRepository:     NewSessionRepository(database),
		DocumentRepository:    NewDocumentRepository(database),
		JobRepository:         NewJobRepository(database),
		ApplicationRepository: NewApplicationRepository(database),
		MessageRepository:     NewMessageRepository(database),
	}
}
