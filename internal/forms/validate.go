package forms

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxUploadSize is the per-file ceiling for document and image uploads.
const MaxUploadSize = 5 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// FieldCheck pairs a field name with its non-empty value requirement.
type FieldCheck struct {
	Name  string
	Value string
}

// RequireFields runs sequential presence checks and reports the FIRST missing
// field, matching how the console forms validate before hitting the network.
func RequireFields(checks ...FieldCheck) error {
	for _, check := range checks {
		if strings.TrimSpace(check.Value) == "" {
			return fmt.Errorf("%s is required", check.Name)
		}
	}
	return nil
}

// CheckUpload validates a single uploaded file: known image extension and the
// 5MB ceiling.
func CheckUpload(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return fmt.Errorf("file extension is required")
	}
	if _, ok := allowedImageExtensions[ext]; !ok {
		return fmt.Errorf("unsupported file type: %s", ext)
	}
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max 5MB)")
	}
	return nil
}
