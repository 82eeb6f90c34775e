package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/db"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
)

var documentColumns = []string{"id", "owner_id", "file_name", "storage_path", "mime_type", "file_size", "extracted_text", "created_at"}

// DocumentRepository handles uploaded document rows
type DocumentRepository struct {
	db *db.Database
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(database *db.Database) *DocumentRepository {
	return &DocumentRepository{db: database}
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.FileName,
		&doc.StoragePath,
		&doc.MimeType,
		&doc.FileSize,
		&doc.ExtractedText,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create inserts a document row and sets its ID and creation time
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (int64, error) {
	doc.CreatedAt = helpers.NowUTC()

	query, args, err := r.db.Builder.Insert("documents").
		Columns("owner_id", "file_name", "storage_path", "mime_type", "file_size", "extracted_text", "created_at").
		Values(doc.OwnerID, doc.FileName, doc.StoragePath, doc.MimeType, doc.FileSize, doc.ExtractedText, doc.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create document query: %w", err)
	}

	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&doc.ID); err != nil {
		return 0, fmt.Errorf("error creating document: %w", err)
	}
	return doc.ID, nil
}

// GetByID retrieves a document by its ID
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query, args, err := r.db.Builder.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	doc, err := scanDocument(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error getting document: %w", err)
	}
	return doc, nil
}

// ListByOwner returns a user's documents, newest first
func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Document, error) {
	query, args, err := r.db.Builder.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

// Delete removes a document row
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.db.Builder.Delete("documents").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete document query: %w", err)
	}

	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}
