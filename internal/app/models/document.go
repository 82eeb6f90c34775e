package models

import "time"

// Document is a file uploaded by a user, usually a resume
type Document struct {
	ID            int64     `json:"id" db:"id"`
	OwnerID       int64     `json:"ownerId" db:"owner_id"`
	FileName      string    `json:"fileName" db:"file_name"`
	StoragePath   string    `json:"-" db:"storage_path"`
	MimeType      string    `json:"mimeType" db:"mime_type"`
	FileSize      int64     `json:"fileSize" db:"file_size"`
	ExtractedText string    `json:"-" db:"extracted_text"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
