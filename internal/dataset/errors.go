package dataset

import "errors"

// Sentinel errors for corpus lookups.
var (
	// ErrNoImages is returned by New when the images directory holds no
	// files with an allowed extension.
	ErrNoImages = errors.New("no image files found")

	// ErrAnnotationNotFound is returned when a known identifier has no
	// annotation file.
	ErrAnnotationNotFound = errors.New("annotation not found")

	// ErrImageNotFound is returned when a known identifier has no image
	// file at access time. The file existed at construction, so this
	// means the filesystem changed underneath the index.
	ErrImageNotFound = errors.New("image not found")
)
