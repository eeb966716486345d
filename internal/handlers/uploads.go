package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendorhub/internal/config"
	"vendorhub/internal/forms"
)

// saveUpload validates and stores one uploaded file under the public upload
// root, returning the relative path written to the database.
func saveUpload(file *multipart.FileHeader, subdir string) (string, error) {
	if err := forms.CheckUpload(file); err != nil {
		return "", err
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	filename := primitive.NewObjectID().Hex() + extension

	dir := filepath.Join(config.AppEnv.UploadDir, "uploads", subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	writeThumbnail(fullPath, subdir, filename)

	return filepath.ToSlash(filepath.Join("uploads", subdir, filename)), nil
}

// writeThumbnail renders a 300px-wide copy next to the original. Failures are
// logged, not returned; listings fall back to the full image.
func writeThumbnail(fullPath, subdir, filename string) {
	img, err := imaging.Open(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] thumbnail: decode failed for %s: %v", filename, err)
		return
	}

	thumbDir := filepath.Join(config.AppEnv.UploadDir, "uploads", subdir, "thumbs")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		log.Printf("[UPLOAD] thumbnail: mkdir failed: %v", err)
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, filename)); err != nil {
		log.Printf("[UPLOAD] thumbnail: save failed for %s: %v", filename, err)
	}
}

// saveUploads stores a batch of files under one subdir and returns their
// relative paths in upload order.
func saveUploads(files []*multipart.FileHeader, subdir string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		p, err := saveUpload(file, subdir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func safeDeleteUpload(relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", relPath)
	}

	cleanBase := filepath.Clean(config.AppEnv.UploadDir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget != cleanBase && !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload root: %s", relPath)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
