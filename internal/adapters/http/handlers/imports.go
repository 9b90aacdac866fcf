package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// imagesField is the multipart field carrying screenshots.
const imagesField = "images"

// ExtractFromImages handles POST /api/v1/imports/images.
// It returns a proposed collection; nothing is stored until the client posts
// it to /collections.
func (h *VaultHandler) ExtractFromImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"expected a multipart form with an \"images\" field",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	images, err := h.readImages(form.File[imagesField])
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.vault.ExtractFromImages(c.Request.Context(), images)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExtractionResponse(result))
}

// readImages loads each upload and sniffs its type from content; the
// client-declared Content-Type is ignored.
func (h *VaultHandler) readImages(files []*multipart.FileHeader) ([]domain.Image, error) {
	images := make([]domain.Image, 0, len(files))

	for i, fh := range files {
		field := fmt.Sprintf("%s[%d]", imagesField, i)

		if fh.Size > h.maxImageBytes {
			return nil, domain.NewValidationErrorWithValue(field, "image too large", fh.Size)
		}

		data, err := readUpload(fh, h.maxImageBytes)
		if err != nil {
			return nil, domain.NewValidationError(field, err.Error())
		}

		images = append(images, domain.Image{
			MIMEType: mimetype.Detect(data).String(),
			Data:     data,
		})
	}

	return images, nil
}

func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, errors.New("image too large")
	}

	return data, nil
}

// ImportLink handles POST /api/v1/imports/link and records the link in history.
func (h *VaultHandler) ImportLink(c *gin.Context) {
	var req dto.LinkRequest
	if !bindJSON(c, &req) {
		return
	}

	item, created, err := h.vault.ImportLink(c.Request.Context(), req.URL)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respondCreated(c, created, dto.NewHistoryItemResponse(item))
}
