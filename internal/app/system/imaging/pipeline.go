// Package imaging derives resized webp variants from uploaded raster images.
//
// Given an original upload already written to storage, Process produces a
// primary webp plus thumbnail/medium renditions (and a low-quality one for
// large sources) and writes them next to the original. Processing is
// best-effort: any failure is logged and the caller receives an asset with
// only the original path, never an error. Entity saves must not fail because
// a resize did.
package imaging

import (
	"bytes"
	"context"
	"image"
	"io"
	"path"
	"strings"

	"github.com/chai2010/webp"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

// Variant geometry and quality, matching the public site's breakpoints.
const (
	webMaxDim    = 1920
	lowMaxDim    = 1200
	mediumMaxDim = 800
	thumbMaxDim  = 300

	webQuality      = 80
	webQualityLarge = 70
	lowQuality      = 50
	mediumQuality   = 70
	thumbQuality    = 65

	// largeBytes is the byte-size threshold for the "large" classification.
	largeBytes = 1 << 20
)

// BlobStore is the slice of the storage API the pipeline needs. The app's
// storage.Store (local disk or S3) satisfies it.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

type variantSpec struct {
	name    string
	maxDim  int
	quality int
	resize  bool
}

// Pipeline derives image variants and writes them to blob storage.
type Pipeline struct {
	blobs BlobStore
	log   *zap.Logger
}

// New creates a Pipeline writing through the given store.
func New(blobs BlobStore, log *zap.Logger) *Pipeline {
	return &Pipeline{blobs: blobs, log: log}
}

// rasterExts are the extensions Process attempts to decode. Anything else
// (SVG, PDF, video) passes through untouched.
var rasterExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".webp": true, ".gif": true, ".bmp": true,
}

// Process derives the variant set for an upload already stored at sourcePath.
//
// The returned asset's Variants map holds public paths keyed by variant
// name. Non-raster files and any decode/encode/storage failure degrade to
// an asset containing only the original.
func (p *Pipeline) Process(ctx context.Context, sourcePath string, data []byte) models.ImageAsset {
	original := models.ImageAsset{
		SourcePath: sourcePath,
		Variants:   map[string]string{models.VariantOriginal: p.blobs.URL(sourcePath)},
	}

	if !rasterExts[strings.ToLower(path.Ext(sourcePath))] {
		return original
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.log.Warn("image decode failed, keeping original only",
			zap.String("source", sourcePath),
			zap.Error(err))
		return original
	}

	bounds := img.Bounds()
	large := isLarge(bounds.Dx(), bounds.Dy(), len(data))

	specs := []variantSpec{
		{models.VariantWebP, webMaxDim, pickWebQuality(large), large},
		{models.VariantThumbnail, thumbMaxDim, thumbQuality, true},
		{models.VariantMedium, mediumMaxDim, mediumQuality, true},
	}
	if large {
		specs = append(specs, variantSpec{models.VariantLow, lowMaxDim, lowQuality, true})
	}

	produced := make(map[string]string, len(specs))
	var written []string
	for _, spec := range specs {
		out := img
		if spec.resize {
			out = fitWithin(img, spec.maxDim)
		}

		var buf bytes.Buffer
		if err := webp.Encode(&buf, out, &webp.Options{Quality: float32(spec.quality)}); err != nil {
			p.cleanup(ctx, written)
			p.log.Warn("variant encode failed, keeping original only",
				zap.String("source", sourcePath),
				zap.String("variant", spec.name),
				zap.Error(err))
			return original
		}

		key := variantKey(sourcePath, spec.name)
		opts := &storage.PutOptions{ContentType: "image/webp"}
		if err := p.blobs.Put(ctx, key, &buf, opts); err != nil {
			p.cleanup(ctx, written)
			p.log.Warn("variant upload failed, keeping original only",
				zap.String("source", sourcePath),
				zap.String("variant", spec.name),
				zap.Error(err))
			return original
		}
		written = append(written, key)
		produced[spec.name] = p.blobs.URL(key)
	}

	p.log.Debug("image variants produced",
		zap.String("source", sourcePath),
		zap.String("format", format),
		zap.Bool("large", large),
		zap.Int("variants", len(produced)))

	produced[models.VariantOriginal] = p.blobs.URL(sourcePath)
	return models.ImageAsset{SourcePath: sourcePath, Variants: produced}
}

// cleanup best-effort deletes variants written before a later step failed.
func (p *Pipeline) cleanup(ctx context.Context, keys []string) {
	for _, k := range keys {
		if err := p.blobs.Delete(ctx, k); err != nil {
			p.log.Debug("variant cleanup failed", zap.String("key", k), zap.Error(err))
		}
	}
}

// DeleteVariants best-effort removes every stored path of an asset,
// including the original. Used when the owning entity is deleted.
func (p *Pipeline) DeleteVariants(ctx context.Context, asset models.ImageAsset) {
	if asset.SourcePath == "" {
		return
	}
	if err := p.blobs.Delete(ctx, asset.SourcePath); err != nil {
		p.log.Debug("asset delete failed", zap.String("key", asset.SourcePath), zap.Error(err))
	}
	for name := range asset.Variants {
		if name == models.VariantOriginal {
			continue
		}
		key := variantKey(asset.SourcePath, name)
		if err := p.blobs.Delete(ctx, key); err != nil {
			p.log.Debug("variant delete failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// isLarge classifies a source image. Thresholds are strictly greater-than:
// exactly 1920px or exactly 1MB is not large.
func isLarge(width, height, byteSize int) bool {
	return width > webMaxDim || height > webMaxDim || byteSize > largeBytes
}

func pickWebQuality(large bool) int {
	if large {
		return webQualityLarge
	}
	return webQuality
}

// fitWithin scales img to fit inside maxDim x maxDim, preserving aspect
// ratio and never upscaling or cropping.
func fitWithin(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	tw, th := fitDims(w, h, maxDim)
	if tw == w && th == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// fitDims computes fit-inside target dimensions without upscaling.
func fitDims(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}

// variantKey derives the storage key of a named variant from the source key:
// uploads/2026/09/a1b2.jpg -> uploads/2026/09/a1b2_thumbnail.webp.
func variantKey(sourcePath, variant string) string {
	ext := path.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + "_" + variant + ".webp"
}
