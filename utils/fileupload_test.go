package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(t *testing.T, filename string, size int64) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("content"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.NotEmpty(t, form.File["file"])
	fileHeader := form.File["file"][0]
	// Override size so oversized files can be simulated without writing them
	fileHeader.Size = size
	return fileHeader
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{"valid png", "photo.png", 1024, ""},
		{"valid jpg", "photo.jpg", 1024, ""},
		{"valid jpeg", "photo.jpeg", 1024, ""},
		{"uppercase extension accepted", "PHOTO.PNG", 1024, ""},
		{"at size limit", "photo.png", MaxFileSize, ""},
		{"over size limit", "photo.png", MaxFileSize + 1, "FILE_TOO_LARGE"},
		{"pdf rejected", "document.pdf", 1024, "INVALID_FILE_FORMAT"},
		{"gif rejected", "animation.gif", 1024, "INVALID_FILE_FORMAT"},
		{"no extension rejected", "photo", 1024, "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := createTestFileHeader(t, tt.filename, tt.size)

			err := ValidateImageFile(fileHeader)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var uploadErr *FileUploadError
			require.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}
