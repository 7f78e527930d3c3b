// internal/domain/models/imageasset.go
package models

// Image variant names produced by the derived-image pipeline.
const (
	VariantOriginal  = "original"
	VariantWebP      = "webp"
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLow       = "low"
)

// ImageAsset is an uploaded image plus its derived variants.
//
// SourcePath is the storage key of the original upload. Variants maps
// variant name to a public-facing path; it always contains "original" and,
// when processing succeeded, "webp"/"thumbnail"/"medium" (and "low" for
// large sources). An asset is mutated only by replacement: re-uploading
// overwrites the whole value.
type ImageAsset struct {
	SourcePath string            `bson:"source_path" json:"source_path"`
	Variants   map[string]string `bson:"variants" json:"variants"`
}

// IsZero reports whether the asset is unset.
func (a ImageAsset) IsZero() bool {
	return a.SourcePath == "" && len(a.Variants) == 0
}

// Best returns the preferred public path for display: the webp variant when
// present, otherwise the original.
func (a ImageAsset) Best() string {
	if v, ok := a.Variants[VariantWebP]; ok {
		return v
	}
	return a.Variants[VariantOriginal]
}
