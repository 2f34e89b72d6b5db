package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"testing"

	"github.com/stashbin/stashbin/internal/model"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileService(t *testing.T) *FileService {
	t.Helper()

	s, _ := newTestStorage(t)
	return NewFileService(repository.NewFileRepository(newTestDB(t)), s)
}

func b64(data string) string {
	return base64.StdEncoding.EncodeToString([]byte(data))
}

func TestCreate_ValidationOrder(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateFileInput
		want  error
	}{
		// Name is checked before everything else
		{"no name at all", CreateFileInput{}, ErrMissingName},
		{"no type", CreateFileInput{Name: "x"}, ErrMissingType},
		{"unknown type", CreateFileInput{Name: "x", Type: "symlink"}, ErrMissingType},
		{"file without data", CreateFileInput{Name: "x", Type: model.FileTypeFile}, ErrMissingData},
		{"image without data", CreateFileInput{Name: "x", Type: model.FileTypeImage}, ErrMissingData},
		{"data not base64", CreateFileInput{Name: "x", Type: model.FileTypeFile, Data: "!!!"}, ErrMissingData},
		{"unknown parent", CreateFileInput{Name: "x", Type: model.FileTypeFolder, ParentID: "missing"}, ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := files.Create(ctx, "user-1", tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreate_ParentMustBeFolder(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	regular, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "notes.txt",
		Type: model.FileTypeFile,
		Data: b64("hello"),
	})
	require.NoError(t, err)

	_, err = files.Create(ctx, "user-1", CreateFileInput{
		Name:     "child",
		Type:     model.FileTypeFolder,
		ParentID: regular.ID,
	})
	assert.ErrorIs(t, err, ErrParentNotFolder)
}

func TestCreate_Folder(t *testing.T) {
	files := newFileService(t)

	folder, err := files.Create(context.Background(), "user-1", CreateFileInput{
		Name: "docs",
		Type: model.FileTypeFolder,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, folder.ID)
	assert.Equal(t, "user-1", folder.UserID)
	assert.Equal(t, model.RootParentID, folder.ParentID)
	assert.False(t, folder.IsPublic)
	assert.Nil(t, folder.LocalPath)
}

func TestCreate_FileWritesBlobBeforeRecord(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	file, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "notes.txt",
		Type: model.FileTypeFile,
		Data: b64("hello, world"),
	})
	require.NoError(t, err)

	require.NotNil(t, file.LocalPath)
	content, err := os.ReadFile(*file.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello, world"), content)

	// Blob name is a generated identifier, never the user-supplied name
	assert.NotContains(t, *file.LocalPath, "notes.txt")
}

func TestCreate_NestedInFolder(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	folder, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "docs",
		Type: model.FileTypeFolder,
	})
	require.NoError(t, err)

	child, err := files.Create(ctx, "user-1", CreateFileInput{
		Name:     "inner.txt",
		Type:     model.FileTypeFile,
		ParentID: folder.ID,
		Data:     b64("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, folder.ID, child.ParentID)
}

func TestOwned(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	file, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "docs",
		Type: model.FileTypeFolder,
	})
	require.NoError(t, err)

	got, err := files.Owned("user-1", file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)

	// Missing id and someone else's id report the same outcome
	_, err = files.Owned("user-1", "missing")
	assert.ErrorIs(t, err, repository.ErrFileNotFound)

	_, err = files.Owned("user-2", file.ID)
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestListOwned_Pagination(t *testing.T) {
	for _, total := range []int{20, 21, 39, 40} {
		t.Run(fmt.Sprintf("%d records", total), func(t *testing.T) {
			files := newFileService(t)
			ctx := context.Background()

			created := make(map[string]bool, total)
			for i := range total {
				f, err := files.Create(ctx, "user-1", CreateFileInput{
					Name: fmt.Sprintf("folder-%d", i),
					Type: model.FileTypeFolder,
				})
				require.NoError(t, err)
				created[f.ID] = true
			}

			// Records owned by someone else never leak into the listing
			_, err := files.Create(ctx, "user-2", CreateFileInput{
				Name: "other",
				Type: model.FileTypeFolder,
			})
			require.NoError(t, err)

			seen := map[string]bool{}
			for page := 0; ; page++ {
				batch, err := files.ListOwned("user-1", "", page)
				require.NoError(t, err)
				if len(batch) == 0 {
					break
				}
				assert.LessOrEqual(t, len(batch), ListPageSize)
				for _, f := range batch {
					assert.False(t, seen[f.ID], "duplicate record across pages")
					seen[f.ID] = true
				}
			}

			assert.Equal(t, created, seen)
		})
	}
}

func TestListOwned_UnmatchedParent(t *testing.T) {
	files := newFileService(t)

	batch, err := files.ListOwned("user-1", "no-such-parent", 0)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestSetVisibility(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	file, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "notes.txt",
		Type: model.FileTypeFile,
		Data: b64("x"),
	})
	require.NoError(t, err)

	published, err := files.SetVisibility("user-1", file.ID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublic)

	// Repeating a publish is stable
	published, err = files.SetVisibility("user-1", file.ID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublic)

	unpublished, err := files.SetVisibility("user-1", file.ID, false)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublic)

	got, err := files.Owned("user-1", file.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)

	_, err = files.SetVisibility("user-2", file.ID, true)
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestPublicOrOwned(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	private, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "secret.txt",
		Type: model.FileTypeFile,
		Data: b64("x"),
	})
	require.NoError(t, err)

	// Anonymous and non-owner callers see nothing
	_, err = files.PublicOrOwned("", private.ID)
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
	_, err = files.PublicOrOwned("user-2", private.ID)
	assert.ErrorIs(t, err, repository.ErrFileNotFound)

	got, err := files.PublicOrOwned("user-1", private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	_, err = files.SetVisibility("user-1", private.ID, true)
	require.NoError(t, err)

	got, err = files.PublicOrOwned("", private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)
}

func TestData_RoundTrip(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	content := []byte("some\x00binary\xffcontent")
	file, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "blob.png",
		Type: model.FileTypeImage,
		Data: base64.StdEncoding.EncodeToString(content),
	})
	require.NoError(t, err)

	data, mimeType, err := files.Data(ctx, "user-1", file.ID)
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, "image/png", mimeType)
}

func TestData_UnknownExtension(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	file, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "noext",
		Type: model.FileTypeFile,
		Data: b64("x"),
	})
	require.NoError(t, err)

	_, mimeType, err := files.Data(ctx, "user-1", file.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", mimeType)
}

func TestData_Folder(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	folder, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "docs",
		Type: model.FileTypeFolder,
	})
	require.NoError(t, err)

	_, _, err = files.Data(ctx, "user-1", folder.ID)
	assert.ErrorIs(t, err, ErrFolderHasNoData)
}

func TestData_BlobRemovedExternally(t *testing.T) {
	files := newFileService(t)
	ctx := context.Background()

	file, err := files.Create(ctx, "user-1", CreateFileInput{
		Name: "gone.txt",
		Type: model.FileTypeFile,
		Data: b64("x"),
	})
	require.NoError(t, err)

	require.NoError(t, os.Remove(*file.LocalPath))

	_, _, err = files.Data(ctx, "user-1", file.ID)
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
}
