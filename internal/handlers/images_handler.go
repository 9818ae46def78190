package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/imaging"
	"github.com/BruksfildServices01/barber-admin/internal/storage"
)

type ImagesHandler struct {
	store    storage.ImageStore
	opts     imaging.Options
	maxBytes int64
	log      *zap.Logger
}

func NewImagesHandler(store storage.ImageStore, opts imaging.Options, maxBytes int64, log *zap.Logger) *ImagesHandler {
	return &ImagesHandler{store: store, opts: opts, maxBytes: maxBytes, log: log}
}

// Upload stores the multipart "file" field under a generated name and answers
// with that name.
func (h *ImagesHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "File too large.")
			return
		}
		httperr.BadRequest(c, "missing_file", "Missing file in request.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.log.Error("open upload", zap.Error(err))
		httperr.Internal(c, "failed_to_read_upload", "Internal server error")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.log.Error("read upload", zap.Error(err))
		httperr.Internal(c, "failed_to_read_upload", "Internal server error")
		return
	}

	img, err := imaging.Process(data, fh.Filename, h.opts)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedType) {
			httperr.BadRequest(c, "unsupported_image", "File must be a JPEG, PNG, GIF or WebP image.")
			return
		}
		h.log.Error("process upload", zap.String("filename", fh.Filename), zap.Error(err))
		httperr.Internal(c, "failed_to_process_image", "Internal server error")
		return
	}

	name := uuid.NewString() + img.Ext
	if err := h.store.Save(c.Request.Context(), name, img.ContentType, img.Data); err != nil {
		h.log.Error("save image", zap.String("name", name), zap.Error(err))
		httperr.Internal(c, "failed_to_save_image", "Internal server error")
		return
	}

	h.log.Info("image stored",
		zap.String("name", name),
		zap.String("content_type", img.ContentType),
		zap.Int("size", len(img.Data)),
	)
	c.String(http.StatusCreated, name)
}

func (h *ImagesHandler) Get(c *gin.Context) {
	name := c.Param("filename")

	obj, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			httperr.NotFound(c, "image_not_found", "Not Found")
			return
		}
		h.log.Error("open image", zap.String("name", name), zap.Error(err))
		httperr.Internal(c, "failed_to_open_image", "Internal server error")
		return
	}
	defer obj.Body.Close()

	ctype := obj.ContentType
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, ctype, obj.Body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}
