package model

import (
	"time"
)

const (
	FileTypeFolder = "folder"
	FileTypeFile   = "file"
	FileTypeImage  = "image"

	// RootParentID is the sentinel parent value meaning "no parent folder".
	RootParentID = "0"
)

type File struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	ParentID  string    `db:"parent_id" json:"parentId"`
	IsPublic  bool      `db:"is_public" json:"isPublic"`
	LocalPath *string   `db:"local_path" json:"-"` // Set iff Type != folder; server-side path, never exposed
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// ValidType reports whether t is one of the accepted file types.
func ValidType(t string) bool {
	return t == FileTypeFolder || t == FileTypeFile || t == FileTypeImage
}

func (f *File) IsFolder() bool {
	return f.Type == FileTypeFolder
}
