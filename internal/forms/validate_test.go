package forms

import (
	"mime/multipart"
	"testing"
)

func TestCheckUploadRejectsOversizedFile(t *testing.T) {
	file := &multipart.FileHeader{Filename: "selfie.jpg", Size: MaxUploadSize + 1}
	if err := CheckUpload(file); err == nil {
		t.Fatal("expected error for file over 5MB")
	}
}

func TestCheckUploadRejectsUnknownExtension(t *testing.T) {
	for _, name := range []string{"doc.pdf", "archive.zip", "noext"} {
		file := &multipart.FileHeader{Filename: name, Size: 100}
		if err := CheckUpload(file); err == nil {
			t.Fatalf("expected error for %s", name)
		}
	}
}

func TestCheckUploadAcceptsImageAtLimit(t *testing.T) {
	file := &multipart.FileHeader{Filename: "photo.webp", Size: MaxUploadSize}
	if err := CheckUpload(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
