package types

import "strings"

// Position says whether an image sits in its own block or flows inline.
type Position string

const (
	PositionBlock  Position = "block"
	PositionInline Position = "inline"
)

// ImageType is the display variant taken from the mw:Image typeof suffix.
type ImageType string

const (
	ImageTypeImage     ImageType = "image"
	ImageTypeThumb     ImageType = "thumb"
	ImageTypeFrame     ImageType = "frame"
	ImageTypeFrameless ImageType = "frameless"
)

// ImageRecord is the metadata extracted for one embedded image.
// Pointer fields are nil when the markup does not carry the value.
type ImageRecord struct {
	Filename     string
	Position     Position
	Type         ImageType
	Width        *string
	Height       *string
	OrigWidth    *string
	OrigHeight   *string
	MediaType    *string
	FromTemplate bool
	Caption      *string
	Alt          *string
	Link         *string
	FromCommons  bool
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Value dereferences an optional field, returning "" when it is absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StripDot removes the leading "./" Parsoid puts on document-relative titles.
func StripDot(s string) string {
	return strings.TrimPrefix(s, "./")
}
