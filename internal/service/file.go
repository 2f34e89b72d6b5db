package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/stashbin/stashbin/internal/model"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/storage"
)

var (
	ErrMissingName     = errors.New("missing name")
	ErrMissingType     = errors.New("missing or invalid type")
	ErrMissingData     = errors.New("missing data")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
	ErrFolderHasNoData = errors.New("folder has no content")
)

// ListPageSize is the fixed number of records per listing page.
const ListPageSize = 20

// CreateFileInput is the validated payload for creating a file or folder.
// Data carries base64 content and is required unless Type is folder.
type CreateFileInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// FileService owns the file metadata tree and the mapping from records to
// content blobs.
type FileService struct {
	fileRepository repository.FileRepository
	storage        storage.Storage
}

func NewFileService(fileRepository repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepository: fileRepository,
		storage:        storage,
	}
}

// Create validates input and persists a new file record owned by callerID.
// Checks run in a fixed order, each failure short-circuiting the rest:
// name, type, data, parent existence, parent type.
//
// For files and images the blob is written before the record is persisted,
// so a record never references a blob that was not stored.
func (s *FileService) Create(ctx context.Context, callerID string, input CreateFileInput) (*model.File, error) {
	if input.Name == "" {
		return nil, ErrMissingName
	}
	if !model.ValidType(input.Type) {
		return nil, ErrMissingType
	}
	if input.Type != model.FileTypeFolder && input.Data == "" {
		return nil, ErrMissingData
	}

	parentID := input.ParentID
	if parentID == "" {
		parentID = model.RootParentID
	}
	if parentID != model.RootParentID {
		parent, err := s.fileRepository.ByID(parentID)
		if err != nil {
			if errors.Is(err, repository.ErrFileNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to get parent: %w", err)
		}
		if !parent.IsFolder() {
			return nil, ErrParentNotFolder
		}
	}

	file := &model.File{
		UserID:   callerID,
		Name:     input.Name,
		Type:     input.Type,
		ParentID: parentID,
		IsPublic: input.IsPublic,
	}

	if input.Type != model.FileTypeFolder {
		raw, err := base64.StdEncoding.DecodeString(input.Data)
		if err != nil {
			return nil, ErrMissingData
		}

		location, err := s.storage.Save(ctx, uuid.New().String(), bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to store content: %w", err)
		}
		file.LocalPath = &location
	}

	err := s.fileRepository.Create(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

// Owned returns the file with the given id if it is owned by callerID.
// Existence and ownership are one condition: a missing id and someone else's
// id both report repository.ErrFileNotFound.
func (s *FileService) Owned(callerID, id string) (*model.File, error) {
	return s.fileRepository.ByIDAndUser(id, callerID)
}

// ListOwned returns one page of callerID's files under parentID, in insertion
// order. Pages are zero-based with a fixed size of ListPageSize. An unmatched
// parentID yields an empty page rather than an error.
func (s *FileService) ListOwned(callerID, parentID string, page int) ([]*model.File, error) {
	if parentID == "" {
		parentID = model.RootParentID
	}
	if page < 0 {
		page = 0
	}

	return s.fileRepository.ByUserAndParent(callerID, parentID, ListPageSize, page*ListPageSize)
}

// SetVisibility publishes or unpublishes an owned file and returns the
// updated record.
func (s *FileService) SetVisibility(callerID, id string, isPublic bool) (*model.File, error) {
	file, err := s.Owned(callerID, id)
	if err != nil {
		return nil, err
	}

	err = s.fileRepository.UpdateVisibility(file.ID, isPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to update visibility: %w", err)
	}

	file.IsPublic = isPublic
	return file, nil
}

// PublicOrOwned resolves a file for content access. callerID may be empty for
// anonymous callers. Non-public files resolve only for their owner; every
// other case reports repository.ErrFileNotFound, indistinguishable from a
// missing id.
func (s *FileService) PublicOrOwned(callerID, id string) (*model.File, error) {
	file, err := s.fileRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	if !file.IsPublic && (callerID == "" || callerID != file.UserID) {
		return nil, repository.ErrFileNotFound
	}

	return file, nil
}

// Data returns the raw content bytes of a file visible to callerID, with a
// MIME type derived from the record name's extension. Folders have no content
// by definition. A record whose blob is gone from storage reports not found.
func (s *FileService) Data(ctx context.Context, callerID, id string) ([]byte, string, error) {
	file, err := s.PublicOrOwned(callerID, id)
	if err != nil {
		return nil, "", err
	}

	if file.IsFolder() {
		return nil, "", ErrFolderHasNoData
	}
	if file.LocalPath == nil {
		return nil, "", repository.ErrFileNotFound
	}

	r, err := s.storage.Open(ctx, *file.LocalPath)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, "", repository.ErrFileNotFound
		}
		return nil, "", fmt.Errorf("failed to open blob: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read blob: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(file.Name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return data, mimeType, nil
}
