package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"

	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// memBlobs is an in-memory BlobStore for pipeline tests.
type memBlobs struct {
	objects map[string][]byte
	failPut bool
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (m *memBlobs) Put(_ context.Context, path string, r io.Reader, _ *storage.PutOptions) error {
	if m.failPut {
		return errors.New("put failed")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[path] = data
	return nil
}

func (m *memBlobs) Delete(_ context.Context, path string) error {
	delete(m.objects, path)
	return nil
}

func (m *memBlobs) URL(path string) string { return "/files/" + path }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestProcess_SmallImage(t *testing.T) {
	blobs := newMemBlobs()
	p := New(blobs, zap.NewNop())

	asset := p.Process(context.Background(), "uploads/2026/09/photo.png", pngBytes(t, 640, 480))

	if asset.SourcePath != "uploads/2026/09/photo.png" {
		t.Errorf("SourcePath = %q", asset.SourcePath)
	}
	for _, name := range []string{models.VariantOriginal, models.VariantWebP, models.VariantThumbnail, models.VariantMedium} {
		if asset.Variants[name] == "" {
			t.Errorf("missing variant %q: %v", name, asset.Variants)
		}
	}
	// Not large, so no low variant.
	if _, ok := asset.Variants[models.VariantLow]; ok {
		t.Error("small image received a low variant")
	}
	if _, ok := blobs.objects["uploads/2026/09/photo_thumbnail.webp"]; !ok {
		t.Error("thumbnail not written to storage")
	}
}

func TestProcess_LargeImageGetsLowVariant(t *testing.T) {
	blobs := newMemBlobs()
	p := New(blobs, zap.NewNop())

	asset := p.Process(context.Background(), "uploads/big.png", pngBytes(t, 1921, 10))

	if _, ok := asset.Variants[models.VariantLow]; !ok {
		t.Errorf("1921px-wide image should be large and get a low variant: %v", asset.Variants)
	}
}

func TestProcess_ExactThresholdNotLarge(t *testing.T) {
	blobs := newMemBlobs()
	p := New(blobs, zap.NewNop())

	asset := p.Process(context.Background(), "uploads/edge.png", pngBytes(t, 1920, 10))

	if _, ok := asset.Variants[models.VariantLow]; ok {
		t.Errorf("exactly 1920px should not be large: %v", asset.Variants)
	}
}

func TestProcess_NonRasterPassthrough(t *testing.T) {
	blobs := newMemBlobs()
	p := New(blobs, zap.NewNop())

	asset := p.Process(context.Background(), "uploads/brochure.pdf", []byte("%PDF-1.4"))

	if len(asset.Variants) != 1 || asset.Variants[models.VariantOriginal] == "" {
		t.Errorf("non-raster should pass through with original only: %v", asset.Variants)
	}
	if len(blobs.objects) != 0 {
		t.Error("non-raster file produced storage writes")
	}
}

func TestProcess_CorruptImageDegrades(t *testing.T) {
	blobs := newMemBlobs()
	p := New(blobs, zap.NewNop())

	asset := p.Process(context.Background(), "uploads/broken.jpg", []byte("not an image"))

	if len(asset.Variants) != 1 || asset.Variants[models.VariantOriginal] == "" {
		t.Errorf("corrupt image should degrade to original only: %v", asset.Variants)
	}
}

func TestProcess_StorageFailureDegrades(t *testing.T) {
	blobs := newMemBlobs()
	blobs.failPut = true
	p := New(blobs, zap.NewNop())

	asset := p.Process(context.Background(), "uploads/photo.png", pngBytes(t, 100, 100))

	if len(asset.Variants) != 1 {
		t.Errorf("storage failure should degrade to original only: %v", asset.Variants)
	}
}

func TestIsLarge(t *testing.T) {
	tests := []struct {
		name       string
		w, h, size int
		want       bool
	}{
		{"small", 800, 600, 1000, false},
		{"exact dim", 1920, 1920, 1000, false},
		{"over wide", 1921, 10, 1000, true},
		{"over tall", 10, 1921, 1000, true},
		{"exact bytes", 100, 100, 1 << 20, false},
		{"over bytes", 100, 100, 1<<20 + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLarge(tt.w, tt.h, tt.size); got != tt.want {
				t.Errorf("isLarge(%d, %d, %d) = %v, want %v", tt.w, tt.h, tt.size, got, tt.want)
			}
		})
	}
}

func TestFitDims(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{4000, 2000, 1920, 1920, 960},
		{2000, 4000, 1920, 960, 1920},
		{800, 600, 1920, 800, 600}, // never upscale
		{300, 300, 300, 300, 300},
		{10000, 1, 300, 300, 1},
	}
	for _, tt := range tests {
		gotW, gotH := fitDims(tt.w, tt.h, tt.max)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("fitDims(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.w, tt.h, tt.max, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestVariantKey(t *testing.T) {
	got := variantKey("uploads/2026/09/a1b2.jpg", "thumbnail")
	want := "uploads/2026/09/a1b2_thumbnail.webp"
	if got != want {
		t.Errorf("variantKey = %q, want %q", got, want)
	}
}
