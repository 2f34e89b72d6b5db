package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

type FileRepository interface {
	Create(file *model.File) error
	ByID(id string) (*model.File, error)
	ByIDAndUser(id, userID string) (*model.File, error)
	ByUserAndParent(userID, parentID string, limit, offset int) ([]*model.File, error)
	UpdateVisibility(id string, isPublic bool) error
	Count() (int64, error)
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	query := `INSERT INTO files (id, user_id, name, type, parent_id, is_public, local_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		file.ID,
		file.UserID,
		file.Name,
		file.Type,
		file.ParentID,
		file.IsPublic,
		file.LocalPath,
		file.CreatedAt,
	)

	return err
}

func (r *fileRepository) ByID(id string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1`

	err := r.db.Get(file, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

// ByIDAndUser looks up a file by id and owner in one condition, so callers
// cannot tell a missing id apart from someone else's file.
func (r *fileRepository) ByIDAndUser(id, userID string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1 AND user_id = $2`

	err := r.db.Get(file, query, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

// ByUserAndParent returns the owner's files under parentID in insertion order.
// An unmatched parentID simply yields an empty slice.
func (r *fileRepository) ByUserAndParent(userID, parentID string, limit, offset int) ([]*model.File, error) {
	files := []*model.File{}
	query := `SELECT * FROM files WHERE user_id = $1 AND parent_id = $2 ORDER BY created_at, id LIMIT $3 OFFSET $4`

	err := r.db.Select(&files, query, userID, parentID, limit, offset)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) UpdateVisibility(id string, isPublic bool) error {
	query := `UPDATE files SET is_public = $1 WHERE id = $2`

	result, err := r.db.Exec(query, isPublic, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFileNotFound
	}

	return nil
}

func (r *fileRepository) Count() (int64, error) {
	var count int64
	err := r.db.Get(&count, `SELECT COUNT(*) FROM files`)
	return count, err
}
