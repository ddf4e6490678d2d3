package attachment_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/attachment"
	"custodia/internal/objstore"
)

type fakeStore struct {
	objects map[string]*objstore.Object
	err     error
}

func (f *fakeStore) Get(_ context.Context, path string) (*objstore.Object, error) {
	if f.err != nil {
		return nil, f.err
	}

	obj, ok := f.objects[path]
	if !ok {
		return nil, objstore.ErrNotFound
	}

	return obj, nil
}

func (f *fakeStore) Put(_ context.Context, path string, data []byte, contentType string) error {
	f.objects[path] = &objstore.Object{Bytes: data, ContentType: contentType}
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestLoader_Missing(t *testing.T) {
	l := attachment.NewLoader(&fakeStore{objects: map[string]*objstore.Object{}})

	got := l.Load(context.Background(), "users/u/receipts/gone.jpg", "image/jpeg")
	assert.Equal(t, attachment.KindMissing, got.Kind)
}

func TestLoader_StoreFailure(t *testing.T) {
	l := attachment.NewLoader(&fakeStore{err: errors.New("connection reset")})

	got := l.Load(context.Background(), "users/u/receipts/a.jpg", "image/jpeg")
	assert.Equal(t, attachment.KindFailed, got.Kind)
	assert.Contains(t, got.Reason, "connection reset")
}

func TestLoader_OpaqueDocument(t *testing.T) {
	store := &fakeStore{objects: map[string]*objstore.Object{
		"users/u/receipts/contrato.pdf": {Bytes: []byte("%PDF-1.7 fake")},
	}}
	l := attachment.NewLoader(store)

	got := l.Load(context.Background(), "users/u/receipts/contrato.pdf", "application/pdf")
	assert.Equal(t, attachment.KindOpaque, got.Kind)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.NotEmpty(t, got.Bytes)
}

func TestLoader_ImagePassesThroughBounded(t *testing.T) {
	store := &fakeStore{objects: map[string]*objstore.Object{
		"users/u/receipts/recibo.png": {Bytes: pngBytes(t, 640, 480)},
	}}
	l := attachment.NewLoader(store)

	got := l.Load(context.Background(), "users/u/receipts/recibo.png", "image/png")
	require.Equal(t, attachment.KindImage, got.Kind)

	// Small images keep their dimensions and re-encode as JPEG.
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.Equal(t, 640, got.Width)
	assert.Equal(t, 480, got.Height)

	decoded, err := jpeg.Decode(bytes.NewReader(got.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 640, decoded.Bounds().Dx())
}

func TestLoader_OversizedImageResized(t *testing.T) {
	store := &fakeStore{objects: map[string]*objstore.Object{
		"users/u/receipts/scan.png": {Bytes: pngBytes(t, 2800, 1400)},
	}}
	l := attachment.NewLoader(store)

	got := l.Load(context.Background(), "users/u/receipts/scan.png", "image/png")
	require.Equal(t, attachment.KindImage, got.Kind)

	// The longest side is capped; the aspect ratio survives.
	assert.Equal(t, 1400, got.Width)
	assert.Equal(t, 700, got.Height)
}

func TestLoader_CorruptImage(t *testing.T) {
	store := &fakeStore{objects: map[string]*objstore.Object{
		"users/u/receipts/quebrado.png": {Bytes: []byte("not an image at all")},
	}}
	l := attachment.NewLoader(store)

	got := l.Load(context.Background(), "users/u/receipts/quebrado.png", "image/png")
	assert.Equal(t, attachment.KindFailed, got.Kind)
	assert.Contains(t, got.Reason, "corrupt image")
}

func TestLoader_SniffsGenericContentType(t *testing.T) {
	// Transport and declared types are both generic; the bytes decide.
	store := &fakeStore{objects: map[string]*objstore.Object{
		"users/u/receipts/blob": {
			Bytes:       pngBytes(t, 10, 10),
			ContentType: "application/octet-stream",
		},
	}}
	l := attachment.NewLoader(store)

	got := l.Load(context.Background(), "users/u/receipts/blob", "application/octet-stream")
	assert.Equal(t, attachment.KindImage, got.Kind)
}
