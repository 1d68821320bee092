package handlers

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/internal/utils/storage"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

// uploadFolders maps the "type" form field to an object key prefix.
var uploadFolders = map[string]string{
	"":        "general",
	"general": "general",
	"avatar":  "avatars",
	"avatars": "avatars",
	"recipe":  "recipes",
	"recipes": "recipes",
	"step":    "steps",
	"steps":   "steps",
}

type (
	UploadHandler interface {
		UploadImage(c *fiber.Ctx) error
		UploadImages(c *fiber.Ctx) error
	}

	uploadHandler struct {
		storage  storage.ObjectStorage
		maxBytes int64
	}
)

func NewUploadHandler(objectStorage storage.ObjectStorage, maxBytes int64) UploadHandler {
	return &uploadHandler{
		storage:  objectStorage,
		maxBytes: maxBytes,
	}
}

func (h *uploadHandler) UploadImage(c *fiber.Ctx) error {
	folder, err := h.folder(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpload, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpload, domain.ErrFileRequired)
	}
	res, err := h.store(c, fh, folder)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpload, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUpload)
}

// UploadImages validates every file before storing any of them.
func (h *uploadHandler) UploadImages(c *fiber.Ctx) error {
	folder, err := h.folder(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpload, err)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpload, domain.ErrFileRequired)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return presenters.HandleError(c, domain.MessageFailedUpload, domain.ErrFileRequired)
	}
	for _, fh := range files {
		if _, err := h.check(fh); err != nil {
			return presenters.HandleError(c, domain.MessageFailedUpload, err)
		}
	}

	res := domain.MultiUploadResponse{Files: make([]domain.UploadResponse, 0, len(files))}
	for _, fh := range files {
		item, err := h.store(c, fh, folder)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedUpload, err)
		}
		res.Files = append(res.Files, item)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUpload)
}

func (h *uploadHandler) folder(c *fiber.Ctx) (string, error) {
	folder, ok := uploadFolders[c.FormValue("type")]
	if !ok {
		return "", domain.ErrUploadTypeWrong
	}
	return folder, nil
}

// check validates the declared type and the size, then sniffs the leading
// bytes. It returns the detected content type.
func (h *uploadHandler) check(fh *multipart.FileHeader) (string, error) {
	if !storage.IsAllowed(fh.Header.Get(fiber.HeaderContentType), storage.AllowImage...) {
		return "", domain.ErrFileNotImage
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return "", domain.ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	if !storage.IsAllowed(mtype.String(), storage.AllowImage...) {
		return "", domain.ErrFileNotImage
	}
	return mtype.String(), nil
}

func (h *uploadHandler) store(c *fiber.Ctx, fh *multipart.FileHeader, folder string) (domain.UploadResponse, error) {
	contentType, err := h.check(fh)
	if err != nil {
		return domain.UploadResponse{}, err
	}

	file, err := fh.Open()
	if err != nil {
		return domain.UploadResponse{}, err
	}
	defer file.Close()

	url, err := h.storage.UploadFile(c.Context(), fh.Filename, file, contentType, folder)
	if err != nil {
		return domain.UploadResponse{}, err
	}
	return domain.UploadResponse{URL: url, FileName: fh.Filename, Size: fh.Size}, nil
}
