package uploads

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
	"storyreel-client/internal/backend"
)

// MaxSeedImageBytes caps seed image uploads at 10 MB.
const MaxSeedImageBytes = 10 << 20

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Uploader pushes seed images to a Supabase storage bucket and hands
// back the public URL for use in scene generation.
type Uploader struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewUploader(supabaseURL, publishableKey, bucket string) *Uploader {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", publishableKey, nil)
	return &Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// ValidateSeedImage runs the client-side checks that must pass before
// any network call is made.
func ValidateSeedImage(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := contentTypes[ext]; !ok {
		return &backend.ValidationError{Field: "filename", Message: "must be a .jpg, .jpeg, .png or .webp image"}
	}
	if len(data) == 0 {
		return &backend.ValidationError{Field: "file", Message: "is empty"}
	}
	if len(data) > MaxSeedImageBytes {
		return &backend.ValidationError{Field: "file", Message: "exceeds the 10MB limit"}
	}
	return nil
}

// UploadSeedImage validates and uploads one seed image, returning its
// public URL.
func (u *Uploader) UploadSeedImage(userID, storyboardID uuid.UUID, filename string, data []byte) (string, error) {
	if err := ValidateSeedImage(filename, data); err != nil {
		return "", err
	}

	storagePath := fmt.Sprintf("users/%s/storyboards/%s/%s", userID.String(), storyboardID.String(), filename)

	contentType := contentTypes[strings.ToLower(filepath.Ext(filename))]
	upsert := true
	_, err := u.client.UploadFile(u.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload seed image: %w", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.baseURL, u.bucket, storagePath), nil
}
