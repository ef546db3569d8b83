package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/lost-items/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	path := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is not an error
	assert.NoError(t, store.Delete(context.Background(), url))
}

func TestLocalStore_DeleteIgnoresForeignAndTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "https://cdn.example.com/a.jpg"))
	assert.Error(t, store.Delete(context.Background(), "/uploads/../../etc/passwd"))
}

type fakeS3 struct {
	puts    map[string][]byte
	deleted []string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(in.Body)
	f.puts[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_UploadAndDelete(t *testing.T) {
	fake := &fakeS3{puts: map[string][]byte{}}
	store := newS3Store(fake, "photos", "https://cdn.example.com/")

	url, err := store.Upload(context.Background(), []byte("png"), "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.example.com/lost-items/"))

	key := strings.TrimPrefix(url, "https://cdn.example.com/")
	assert.Equal(t, []byte("png"), fake.puts[key])
	assert.True(t, strings.HasSuffix(key, ".png"))

	require.NoError(t, store.Delete(context.Background(), url))
	assert.Equal(t, []string{key}, fake.deleted)

	require.NoError(t, store.Delete(context.Background(), "/uploads/other.jpg"))
	assert.Len(t, fake.deleted, 1)
}

func TestS3Store_UploadError(t *testing.T) {
	store := newS3Store(&fakeS3{err: errors.New("denied")}, "photos", "https://cdn.example.com")
	_, err := store.Upload(context.Background(), []byte("x"), "image/jpeg")
	assert.Error(t, err)
}

func TestNew_SelectsDriver(t *testing.T) {
	store, err := New(context.Background(), &config.Config{StorageDriver: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(context.Background(), &config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}
