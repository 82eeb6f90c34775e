package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	authz "github.com/yigit/talentbridge/internal/app/auth"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/events"
	"github.com/yigit/talentbridge/internal/pkg/filestorage"
	"github.com/yigit/talentbridge/internal/pkg/textextract"
)

// AllowedDocumentExtensions lists the upload types accepted as documents
var AllowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".rtf":  true,
}

// DefaultMaxUploadSize applies when no limit is configured
const DefaultMaxUploadSize int64 = 10 << 20

// DocumentService defines the interface for document operations
type DocumentService interface {
	Upload(ctx context.Context, ownerID int64, file *multipart.FileHeader) (*models.Document, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Document, error)
	Get(ctx context.Context, viewer *models.User, id int64) (*models.Document, error)
	Open(ctx context.Context, viewer *models.User, id int64) (*models.Document, io.ReadCloser, error)
	Delete(ctx context.Context, viewer *models.User, id int64) error
}

// documentServiceImpl implements DocumentService
type documentServiceImpl struct {
	documentRepo  *repositories.DocumentRepository
	storage       filestorage.FileStorage
	publisher     events.Publisher
	authzService  *authz.AuthorizationService
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo *repositories.DocumentRepository,
	storage filestorage.FileStorage,
	publisher events.Publisher,
	authzService *authz.AuthorizationService,
	maxUploadSize int64,
	logger zerolog.Logger,
) DocumentService {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &documentServiceImpl{
		documentRepo:  documentRepo,
		storage:       storage,
		publisher:     publisher,
		authzService:  authzService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (s *documentServiceImpl) validateUpload(file *multipart.FileHeader) error {
	if file == nil || file.Filename == "" {
		return apperrors.ErrFileRequired
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedDocumentExtensions[ext] {
		return apperrors.NewCustomError(apperrors.ErrUnsupportedFileType,
			"Unsupported file type. Upload a PDF, DOC, DOCX, TXT or RTF file")
	}
	if file.Size <= 0 {
		return apperrors.NewCustomError(apperrors.ErrFileRequired, "The uploaded file is empty")
	}
	if file.Size > s.maxUploadSize {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("File is too large. The limit is %d MB", s.maxUploadSize>>20))
	}
	return nil
}

// extractText is best effort: a document that cannot be parsed is still stored
func (s *documentServiceImpl) extractText(file *multipart.FileHeader) string {
	f, err := file.Open()
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", file.Filename).Msg("Could not open upload for text extraction")
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadSize))
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", file.Filename).Msg("Could not read upload for text extraction")
		return ""
	}

	text, err := textextract.Extract(file.Filename, data)
	if err != nil {
		if !errors.Is(err, textextract.ErrUnsupported) {
			s.logger.Warn().Err(err).Str("filename", file.Filename).Msg("Text extraction failed")
		}
		return ""
	}
	return text
}

// Upload stores a file for ownerID and records it
func (s *documentServiceImpl) Upload(ctx context.Context, ownerID int64, file *multipart.FileHeader) (*models.Document, error) {
	if err := s.validateUpload(file); err != nil {
		return nil, err
	}

	text := s.extractText(file)

	info, err := s.storage.SaveFileWithPath(ctx, file, fmt.Sprintf("documents/%d", ownerID))
	if err != nil {
		return nil, fmt.Errorf("error storing document: %w", err)
	}

	doc := &models.Document{
		OwnerID:       ownerID,
		FileName:      filepath.Base(file.Filename),
		StoragePath:   info.Key,
		MimeType:      info.MimeType,
		FileSize:      info.FileSize,
		ExtractedText: text,
	}
	if _, err := s.documentRepo.Create(ctx, doc); err != nil {
		if delErr := s.storage.DeleteFile(ctx, info.Key); delErr != nil {
			s.logger.Error().Err(delErr).Str("key", info.Key).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	s.logger.Info().Int64("documentID", doc.ID).Int64("ownerID", ownerID).Msg("Document uploaded")
	events.PublishAsync(s.publisher, events.DocumentUploaded, map[string]any{
		"documentId": doc.ID,
		"ownerId":    ownerID,
		"fileName":   doc.FileName,
		"mimeType":   doc.MimeType,
		"hasText":    text != "",
	})
	return doc, nil
}

// ListByOwner lists a user's documents, newest first
func (s *documentServiceImpl) ListByOwner(ctx context.Context, ownerID int64) ([]models.Document, error) {
	return s.documentRepo.ListByOwner(ctx, ownerID)
}

// Get returns a document the viewer may see
func (s *documentServiceImpl) Get(ctx context.Context, viewer *models.User, id int64) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.authzService.CanViewDocument(viewer, doc) {
		// other users' documents are reported as missing
		return nil, apperrors.ErrDocumentNotFound
	}
	return doc, nil
}

// Open returns the document with a reader over its content; the caller closes the reader
func (s *documentServiceImpl) Open(ctx context.Context, viewer *models.User, id int64) (*models.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, filestorage.ErrNotFound) {
			s.logger.Error().Int64("documentID", id).Str("key", doc.StoragePath).Msg("Document content missing from storage")
			return nil, nil, apperrors.ErrDocumentNotFound
		}
		return nil, nil, fmt.Errorf("error opening document: %w", err)
	}
	return doc, rc, nil
}

// Delete removes a document owned by the viewer. Applications that used it keep their other data.
func (s *documentServiceImpl) Delete(ctx context.Context, viewer *models.User, id int64) error {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.authzService.CanModifyDocument(viewer, doc) {
		return apperrors.ErrDocumentNotFound
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteFile(ctx, doc.StoragePath); err != nil {
		s.logger.Error().Err(err).Str("key", doc.StoragePath).Msg("Failed to delete document content")
	}

	s.logger.Info().Int64("documentID", id).Int64("ownerID", viewer.ID).Msg("Document deleted")
	return nil
}
