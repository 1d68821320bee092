package domain

import "net/http"

var (
	MessageSuccessUpload = "file uploaded successfully"
	MessageFailedUpload  = "failed to upload file"

	ErrFileRequired    = NewClientError(http.StatusBadRequest, "file is required")
	ErrFileNotImage    = NewClientError(http.StatusBadRequest, "only image files are allowed")
	ErrFileTooLarge    = NewClientError(http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
	ErrUploadTypeWrong = NewClientError(http.StatusBadRequest, "unknown upload type")
)

type (
	UploadResponse struct {
		URL      string `json:"url"`
		FileName string `json:"fileName"`
		Size     int64  `json:"size"`
	}

	MultiUploadResponse struct {
		Files []UploadResponse `json:"files"`
	}
)
