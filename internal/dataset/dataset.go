// Package dataset indexes a labeled radiograph corpus laid out as
// images/ and annotations/ subdirectories under a common root. The index
// is the sorted, deduplicated set of image filename stems; each stem
// joins an image file to an annotation file named <stem>.json.
package dataset

import (
	"encoding/json"
	"fmt"
	"image"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// Subdirectory names fixed by the corpus layout contract.
const (
	imagesDirName      = "images"
	annotationsDirName = "annotations"
	annotationExt      = ".json"
)

// imageExts is the extension allow-list, in image-lookup priority order.
var imageExts = []string{".png", ".jpg", ".jpeg"}

// Transform post-processes a loaded (image, annotation) pair; the
// returned pair replaces the loaded one.
type Transform func(img *image.Gray, ann Annotation) (*image.Gray, Annotation, error)

// Options configures a Dataset.
type Options struct {
	// LoadImages decodes the grayscale image on every Sample call.
	// The Annotations pass ignores it.
	LoadImages bool

	// Recursive scans images/ recursively; otherwise only its top level.
	Recursive bool

	// Transform, when non-nil, post-processes each Sample result.
	Transform Transform

	// Decoder overrides the image decoder. Nil selects GrayDecoder.
	Decoder Decoder
}

// Dataset is the corpus index. Immutable after construction: the
// directory scan runs once in New and is never repeated, so files added
// later are not observed.
type Dataset struct {
	root   string
	imgDir string
	annDir string
	ids    []string
	opts   Options
	dec    Decoder
}

// Sample is the result of one index lookup.
type Sample struct {
	ID         string
	Image      *image.Gray // nil unless Options.LoadImages is set
	Annotation Annotation
}

// New expands root to an absolute path, scans <root>/images for files
// with an allowed extension and builds the sorted identifier set.
// Returns ErrNoImages when no candidate files exist.
func New(root string, opts Options) (*Dataset, error) {
	abs, absErr := filepath.Abs(root)
	if absErr != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, absErr)
	}

	ds := &Dataset{
		root:   abs,
		imgDir: filepath.Join(abs, imagesDirName),
		annDir: filepath.Join(abs, annotationsDirName),
		opts:   opts,
		dec:    opts.Decoder,
	}
	if ds.dec == nil {
		ds.dec = GrayDecoder{}
	}

	ids, scanErr := scanIDs(ds.imgDir, opts.Recursive)
	if scanErr != nil {
		return nil, fmt.Errorf("scan %s: %w", ds.imgDir, scanErr)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no files with extensions %v under %s",
			ErrNoImages, imageExts, ds.imgDir)
	}

	ds.ids = ids

	return ds, nil
}

// Root returns the absolute corpus root.
func (d *Dataset) Root() string {
	return d.root
}

// Len returns the number of samples in the corpus.
func (d *Dataset) Len() int {
	return len(d.ids)
}

// IDs returns a copy of the sorted sample identifiers.
func (d *Dataset) IDs() []string {
	return slices.Clone(d.ids)
}

// Sample resolves the identifier at index i to its annotation record
// and, when image loading is enabled, its decoded grayscale image.
// Panics when i is out of range, like slice indexing.
func (d *Dataset) Sample(i int) (Sample, error) {
	id := d.ids[i]

	ann, annErr := d.readAnnotation(id)
	if annErr != nil {
		return Sample{}, annErr
	}

	s := Sample{ID: id, Annotation: ann}

	if d.opts.LoadImages {
		img, imgErr := d.readImage(id)
		if imgErr != nil {
			return Sample{}, imgErr
		}

		s.Image = img
	}

	if d.opts.Transform != nil {
		img, ann, tfErr := d.opts.Transform(s.Image, s.Annotation)
		if tfErr != nil {
			return Sample{}, fmt.Errorf("transform sample %s: %w", id, tfErr)
		}

		s.Image, s.Annotation = img, ann
	}

	return s, nil
}

// Annotations returns a lazy pass over the annotation records in
// identifier order, one file read per step. Images are never decoded
// here regardless of Options.LoadImages; this pass exists purely for
// statistics collection. Each range over the sequence starts a fresh
// pass. Iteration stops at the first error.
func (d *Dataset) Annotations() iter.Seq2[Annotation, error] {
	return func(yield func(Annotation, error) bool) {
		for _, id := range d.ids {
			ann, err := d.readAnnotation(id)
			if !yield(ann, err) {
				return
			}

			if err != nil {
				return
			}
		}
	}
}

// readAnnotation parses annotations/<id>.json. Annotation lookup is not
// recursive: the file must sit at the top level of the directory.
func (d *Dataset) readAnnotation(id string) (Annotation, error) {
	path := filepath.Join(d.annDir, id+annotationExt)

	file, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return Annotation{}, fmt.Errorf("%w: %s", ErrAnnotationNotFound, path)
		}

		return Annotation{}, fmt.Errorf("open annotation %s: %w", path, openErr)
	}
	defer file.Close()

	var ann Annotation

	decErr := json.NewDecoder(file).Decode(&ann)
	if decErr != nil {
		return Annotation{}, fmt.Errorf("parse annotation %s: %w", path, decErr)
	}

	return ann, nil
}

// readImage locates and decodes the image file for id. The identifier
// was discovered at construction, so a miss here means the filesystem
// changed in between; that is fatal, not a skip.
func (d *Dataset) readImage(id string) (*image.Gray, error) {
	path, findErr := d.findImage(id)
	if findErr != nil {
		return nil, findErr
	}

	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("open image %s: %w", path, openErr)
	}
	defer file.Close()

	img, decErr := d.dec.Decode(file)
	if decErr != nil {
		return nil, fmt.Errorf("image %s: %w", path, decErr)
	}

	return img, nil
}

// findImage searches the images tree (always recursively) for
// <id><ext>. Extension priority follows the allow-list order.
func (d *Dataset) findImage(id string) (string, error) {
	matches := make(map[string]string, len(imageExts))

	walkErr := filepath.WalkDir(d.imgDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// A vanished tree is a missing image, reported below.
			if os.IsNotExist(err) {
				return nil
			}

			return err
		}

		if entry.IsDir() {
			return nil
		}

		ext := filepath.Ext(entry.Name())
		if entry.Name() == id+ext && slices.Contains(imageExts, ext) {
			if _, dup := matches[ext]; !dup {
				matches[ext] = path
			}
		}

		return nil
	})
	if walkErr != nil {
		return "", fmt.Errorf("search image for %s: %w", id, walkErr)
	}

	for _, ext := range imageExts {
		if path, ok := matches[ext]; ok {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: id %s under %s", ErrImageNotFound, id, d.imgDir)
}

// scanIDs collects the deduplicated filename stems of allowed image
// files and returns them sorted lexicographically, so iteration order is
// reproducible regardless of filesystem enumeration order. A missing
// images directory yields an empty set rather than an I/O error.
func scanIDs(imgDir string, recursive bool) ([]string, error) {
	seen := make(map[string]struct{})

	collect := func(name string) {
		ext := filepath.Ext(name)
		if slices.Contains(imageExts, ext) {
			seen[name[:len(name)-len(ext)]] = struct{}{}
		}
	}

	if recursive {
		walkErr := filepath.WalkDir(imgDir, func(_ string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !entry.IsDir() {
				collect(entry.Name())
			}

			return nil
		})
		if walkErr != nil && !os.IsNotExist(walkErr) {
			return nil, walkErr
		}
	} else {
		entries, readErr := os.ReadDir(imgDir)
		if readErr != nil && !os.IsNotExist(readErr) {
			return nil, readErr
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				collect(entry.Name())
			}
		}
	}

	return slices.Sorted(maps.Keys(seen)), nil
}
