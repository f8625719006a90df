package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{
			name:     "Valid PNG file",
			filename: "photo.png",
			size:     1024,
		},
		{
			name:     "Uppercase extension is accepted",
			filename: "photo.PNG",
			size:     1024,
		},
		{
			name:     "File at the size limit",
			filename: "photo.png",
			size:     MaxFileSize,
		},
		{
			name:         "File over the size limit",
			filename:     "photo.png",
			size:         MaxFileSize + 1,
			expectedCode: "FILE_TOO_LARGE",
		},
		{
			name:         "JPEG is rejected",
			filename:     "photo.jpg",
			size:         1024,
			expectedCode: "INVALID_FILE_FORMAT",
		},
		{
			name:         "No extension is rejected",
			filename:     "photo",
			size:         1024,
			expectedCode: "INVALID_FILE_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     tt.size,
			}

			err := ValidateImageFile(fileHeader)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			uploadErr, ok := err.(*FileUploadError)
			assert.True(t, ok)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}
