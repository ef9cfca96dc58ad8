package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"amorlias/internal/service"
)

// FileHandler handles admin image uploads.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// UploadImage handles POST /api/v1/admin/uploads/image
// @Summary Upload an image
// @Description Stores a JPG, PNG, WebP or GIF image for products, categories, banners or offers. The type is detected from the file content.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param folder formData string false "products, categories, banners or offers" default(products)
// @Success 201 {object} Response{data=service.UploadedImage}
// @Failure 400 {object} ErrorResponseBody "Missing file, bad folder or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 501 {object} ErrorResponseBody "Uploads disabled"
// @Failure 502 {object} ErrorResponseBody "Storage failure"
// @Security BearerAuth
// @Router /admin/uploads/image [post]
func (h *FileHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	img, err := h.fileService.UploadImage(c.Request.Context(), service.ImageUploadInput{
		Folder:   c.PostForm("folder"),
		Filename: header.Filename,
		Size:     header.Size,
		File:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, img)
}
