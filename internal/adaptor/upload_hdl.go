package adaptor

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tic-marketplace/internal/dto/response"
	"tic-marketplace/internal/usecase"
	"tic-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// UploadHandler stores profile images on disk and records their public URL.
type UploadHandler struct {
	profiles   usecase.ProfileService
	uploadDir  string
	backendURL string
	log        *zap.Logger
}

func NewUploadHandler(profiles usecase.ProfileService, uploadDir, backendURL string, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		profiles:   profiles,
		uploadDir:  uploadDir,
		backendURL: strings.TrimRight(backendURL, "/"),
		log:        log,
	}
}

// Upload handles POST /api/upload (multipart "file"). The stored file gets a
// random name; the user's profile_photo is updated to its public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.ResponseBadRequest(w, "No se subió ninguna imagen.", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "No se subió ninguna imagen.", nil)
		return
	}
	defer file.Close()

	// Sniff the real content type instead of trusting the client header
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		h.log.Error("Failed to read upload", zap.Error(err))
		utils.ResponseInternalError(w, "Error en el servidor.")
		return
	}
	contentType := http.DetectContentType(head[:n])

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		utils.ResponseBadRequest(w, "Formato de archivo no permitido para perfil.", nil)
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.log.Error("Failed to rewind upload", zap.Error(err))
		utils.ResponseInternalError(w, "Error en el servidor.")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		h.log.Error("Failed to create upload dir", zap.Error(err), zap.String("dir", h.uploadDir))
		utils.ResponseInternalError(w, "Error en el servidor.")
		return
	}

	filename := uuid.New().String() + ext
	dstPath := filepath.Join(h.uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		h.log.Error("Failed to create upload file", zap.Error(err), zap.String("path", dstPath))
		utils.ResponseInternalError(w, "Error en el servidor.")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.log.Error("Failed to write upload file", zap.Error(err), zap.String("path", dstPath))
		utils.ResponseInternalError(w, "Error en el servidor.")
		return
	}

	fileURL := fmt.Sprintf("%s/uploads/%s", h.backendURL, filename)

	if err := h.profiles.SetProfilePhoto(r.Context(), userID, fileURL); err != nil {
		h.log.Error("Failed to save profile photo URL",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		utils.ResponseError(w, err)
		return
	}

	h.log.Info("Profile image uploaded",
		zap.String("user_id", userID.String()),
		zap.String("file", filename))

	utils.ResponseSuccess(w, "Imagen subida correctamente", response.UploadResponse{FileURL: fileURL})
}
