package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded media and hands back a stable reference string.
// Delete is best effort by contract; callers must not fail a transaction on a
// false return.
type BlobStore interface {
	Store(file multipart.File, header *multipart.FileHeader, nameHint string) (string, error)
	Delete(ref string) bool
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// DiskBlobStore keeps blobs as files under a single directory and returns
// refs that double as URLs under the static mount.
type DiskBlobStore struct {
	BaseDir   string
	URLPrefix string
}

func NewDiskBlobStore() *DiskBlobStore {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "static/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir %s: %v", dir, err)
	}
	return &DiskBlobStore{
		BaseDir:   dir,
		URLPrefix: "/static/uploads",
	}
}

func (s *DiskBlobStore) Store(file multipart.File, header *multipart.FileHeader, nameHint string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}

	hint := unsafeNameChars.ReplaceAllString(nameHint, "")
	if hint == "" {
		hint = "upload"
	}

	name := fmt.Sprintf("%s_%s%s", hint, uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(s.BaseDir, name))
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write blob file: %w", err)
	}

	return s.URLPrefix + "/" + name, nil
}

func (s *DiskBlobStore) Delete(ref string) bool {
	// Refs are URLs we issued; only the final element is trusted
	name := path.Base(ref)
	if name == "." || name == "/" || name == "" {
		return false
	}
	return os.Remove(filepath.Join(s.BaseDir, name)) == nil
}
