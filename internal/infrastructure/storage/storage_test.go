package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/storage"
)

// ─── LocalStore ──────────────────────────────────────────────────────────────

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	dir := t.TempDir()
	st, err := storage.NewLocalStore(filepath.Join(dir, "adjuntos"))
	require.NoError(t, err)
	ctx := context.Background()
	key := "documents/7/abc.pdf"

	require.NoError(t, st.Save(ctx, key, strings.NewReader("contenido"), 9, "application/pdf"))
	_, err = os.Stat(filepath.Join(dir, "adjuntos", "documents", "7", "abc.pdf"))
	require.NoError(t, err)

	rc, err := st.Open(ctx, key)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(b))

	require.NoError(t, st.Delete(ctx, key))
	require.NoError(t, st.Delete(ctx, key), "borrar dos veces no falla")

	_, err = st.Open(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalStore_RechazaClavesFueraDeLaRaiz(t *testing.T) {
	st, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../fuera.txt", "/etc/passwd", ""} {
		err := st.Save(context.Background(), key, strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, key)
	}
}

func TestLocalStore_ContextoCancelado(t *testing.T) {
	dir := t.TempDir()
	st, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = st.Save(ctx, "a/b.txt", strings.NewReader("x"), 1, "")
	require.ErrorIs(t, err, context.Canceled)
	_, err = os.Stat(filepath.Join(dir, "a", "b.txt"))
	assert.True(t, os.IsNotExist(err), "no queda el archivo final")
}

// ─── S3Store ─────────────────────────────────────────────────────────────────

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = b
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_SaveOpenDelete(t *testing.T) {
	client := newFakeS3()
	st := storage.NewS3StoreWithClient(client, "gecom")
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "documents/1/x.pdf", strings.NewReader("pdf"), 3, "application/pdf"))
	assert.Equal(t, "application/pdf", client.types["gecom/documents/1/x.pdf"])

	rc, err := st.Open(ctx, "documents/1/x.pdf")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "pdf", string(b))

	require.NoError(t, st.Delete(ctx, "documents/1/x.pdf"))
	_, err = st.Open(ctx, "documents/1/x.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
