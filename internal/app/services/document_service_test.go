package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/events"
	"github.com/yigit/talentbridge/internal/pkg/filestorage/filestoragetest"
)

func TestDocumentService_UploadAssociatesOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "erin", models.RoleCandidate)

	file := filestoragetest.NewFileHeader(t, "Erin CV.txt", "text/plain", []byte("Kubernetes and Go"))
	doc, err := env.documents.Upload(ctx, owner.ID, file)
	require.NoError(t, err)

	assert.Equal(t, owner.ID, doc.OwnerID)
	assert.Equal(t, "Erin CV.txt", doc.FileName)
	assert.Equal(t, "Kubernetes and Go", doc.ExtractedText)
	assert.True(t, strings.HasPrefix(doc.StoragePath, "documents/"))

	docs, err := env.documents.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)

	assert.Eventually(t, func() bool { return env.publisher.has(events.DocumentUploaded) }, time.Second, 10*time.Millisecond)
}

func TestDocumentService_UploadValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "frank", models.RoleCandidate)

	_, err := env.documents.Upload(ctx, owner.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrFileRequired)

	_, err = env.documents.Upload(ctx, owner.ID, filestoragetest.NewFileHeader(t, "virus.exe", "", []byte("MZ")))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)

	_, err = env.documents.Upload(ctx, owner.ID, filestoragetest.NewFileHeader(t, "empty.txt", "text/plain", nil))
	assert.ErrorIs(t, err, apperrors.ErrFileRequired)

	big := make([]byte, (1<<20)+1)
	_, err = env.documents.Upload(ctx, owner.ID, filestoragetest.NewFileHeader(t, "big.txt", "text/plain", big))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestDocumentService_UnparseableDocumentIsStillStored(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "gail", models.RoleCandidate)

	doc, err := env.documents.Upload(context.Background(), owner.ID,
		filestoragetest.NewFileHeader(t, "cv.pdf", "application/pdf", []byte("definitely not a pdf")))
	require.NoError(t, err)
	assert.Empty(t, doc.ExtractedText)
}

func TestDocumentService_AccessRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "hana", models.RoleCandidate)
	peer := env.register(t, "ivan", models.RoleCandidate)
	recruiter := env.register(t, "judy", models.RoleRecruiter)

	doc, err := env.documents.Upload(ctx, owner.ID, filestoragetest.NewFileHeader(t, "cv.txt", "text/plain", []byte("resume body")))
	require.NoError(t, err)

	_, rc, err := env.documents.Open(ctx, recruiter, doc.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "resume body", string(content))

	_, err = env.documents.Get(ctx, peer, doc.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	assert.ErrorIs(t, env.documents.Delete(ctx, recruiter, doc.ID), apperrors.ErrDocumentNotFound)
	require.NoError(t, env.documents.Delete(ctx, owner, doc.ID))

	_, err = env.documents.Get(ctx, owner, doc.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	_, err = env.storage.Open(ctx, doc.StoragePath)
	assert.Error(t, err)
}
