package uploads_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"storyreel-client/internal/backend"
	"storyreel-client/internal/uploads"
)

func TestValidateSeedImage_AcceptsSupportedFormats(t *testing.T) {
	for _, name := range []string{"photo.jpg", "photo.jpeg", "sketch.png", "frame.webp", "UPPER.PNG"} {
		assert.NoError(t, uploads.ValidateSeedImage(name, []byte("image bytes")), name)
	}
}

func TestValidateSeedImage_RejectsUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"clip.gif", "doc.pdf", "archive.zip", "noextension"} {
		err := uploads.ValidateSeedImage(name, []byte("image bytes"))
		assert.True(t, backend.IsValidation(err), name)
	}
}

func TestValidateSeedImage_RejectsEmptyFile(t *testing.T) {
	err := uploads.ValidateSeedImage("photo.jpg", nil)
	assert.True(t, backend.IsValidation(err))
}

func TestValidateSeedImage_EnforcesSizeLimit(t *testing.T) {
	atLimit := bytes.Repeat([]byte{0xff}, uploads.MaxSeedImageBytes)
	assert.NoError(t, uploads.ValidateSeedImage("photo.jpg", atLimit))

	overLimit := append(atLimit, 0xff)
	err := uploads.ValidateSeedImage("photo.jpg", overLimit)
	assert.True(t, backend.IsValidation(err))
}
