// Package attachment loads receipt files from object storage for
// embedding in reports. Every failure mode is returned as a Result
// variant instead of an error: one missing or corrupt file must never
// abort report generation for the other attachments.
package attachment

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"strings"

	// Registered decoders for the formats receipt scans arrive in.
	_ "image/gif"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	xdraw "golang.org/x/image/draw"

	"custodia/internal/objstore"
)

type Kind int

const (
	KindFailed Kind = iota
	KindMissing
	KindImage
	KindOpaque
)

// Result is the outcome of loading one attachment.
type Result struct {
	Kind        Kind
	Bytes       []byte
	ContentType string

	// Pixel dimensions, set for KindImage only.
	Width  int
	Height int

	// Reason describes a KindFailed outcome.
	Reason string
}

// Receipt scans are bounded to keep the output document small while
// staying legible in print.
const (
	maxDimension = 1400
	jpegQuality  = 85
)

type Loader struct {
	store objstore.Store
}

func NewLoader(store objstore.Store) *Loader {
	return &Loader{store: store}
}

// Load fetches the object at the logical path and prepares it for
// embedding. declaredType is the MIME type recorded at upload time; the
// transport-reported type wins, the declared type is the fallback, and
// the bytes are sniffed when both are absent or generic.
func (l *Loader) Load(ctx context.Context, path, declaredType string) Result {
	obj, err := l.store.Get(ctx, path)
	if err != nil {
		if errors.Is(err, objstore.ErrNotFound) {
			return Result{Kind: KindMissing}
		}

		return Result{Kind: KindFailed, Reason: err.Error()}
	}

	contentType := resolveContentType(obj.ContentType, declaredType, obj.Bytes)

	if !strings.HasPrefix(contentType, "image/") {
		return Result{Kind: KindOpaque, Bytes: obj.Bytes, ContentType: contentType}
	}

	return prepareImage(obj.Bytes)
}

func resolveContentType(transport, declared string, data []byte) string {
	if transport != "" && !generic(transport) {
		return transport
	}

	if declared != "" && !generic(declared) {
		return declared
	}

	return mimetype.Detect(data).String()
}

func generic(contentType string) bool {
	return contentType == "application/octet-stream" || contentType == "binary/octet-stream"
}

// prepareImage decodes, bounds and re-encodes a receipt scan. The
// resize preserves aspect ratio exactly; the JPEG re-encode is lossy to
// bound document size while keeping scans legible.
func prepareImage(data []byte) Result {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{Kind: KindFailed, Reason: "corrupt image: " + err.Error()}
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= 0 || h <= 0 {
		return Result{Kind: KindFailed, Reason: "empty image"}
	}

	targetW, targetH := w, h
	if w > maxDimension || h > maxDimension {
		if w >= h {
			targetW = maxDimension
			targetH = h * maxDimension / w
		} else {
			targetH = maxDimension
			targetW = w * maxDimension / h
		}

		if targetW < 1 {
			targetW = 1
		}

		if targetH < 1 {
			targetH = 1
		}
	}

	// Flatten onto white so transparent scans re-encode cleanly.
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Result{Kind: KindFailed, Reason: "re-encoding image: " + err.Error()}
	}

	return Result{
		Kind:        KindImage,
		Bytes:       buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       targetW,
		Height:      targetH,
	}
}
