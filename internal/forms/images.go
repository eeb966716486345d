package forms

import (
	"io"
	"strings"
)

// ImageRef is one entry of an edit form's image list. An entry either points
// at an already-uploaded image by URL or carries a new file to upload; never
// both.
type ImageRef struct {
	URL  string
	Name string
	Data io.Reader
}

func (r ImageRef) IsExisting() bool {
	return strings.TrimSpace(r.URL) != ""
}

// PartitionImages splits a mixed image list into the existing URL strings and
// the new uploads, each keeping its relative order. Every edit form (product,
// variation, category, banner) goes through this before building its payload.
func PartitionImages(refs []ImageRef) ([]string, []ImageRef) {
	existing := make([]string, 0, len(refs))
	uploads := make([]ImageRef, 0, len(refs))

	for _, ref := range refs {
		if ref.IsExisting() {
			existing = append(existing, ref.URL)
			continue
		}
		if ref.Data != nil {
			uploads = append(uploads, ref)
		}
	}

	return existing, uploads
}

// MergeImages is the server-side counterpart: the kept existing URLs followed
// by the freshly stored upload paths, de-duplicated, order preserved. The
// result is exactly the union of the two lists.
func MergeImages(existing, uploaded []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(uploaded))
	merged := make([]string, 0, len(existing)+len(uploaded))

	appendUnique := func(values []string) {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			merged = append(merged, v)
		}
	}

	appendUnique(existing)
	appendUnique(uploaded)

	return merged
}
