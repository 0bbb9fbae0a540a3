package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lueurstudio/internal/utils"
)

// maxUploadBytes caps a single uploaded photo.
const maxUploadBytes = 10 << 20

var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errUnsupportedUpload = errors.New("unsupported upload type")

// storePhoto sniffs the real content type of an uploaded photo and writes it
// into dir under a collision-proof name. Returns errUnsupportedUpload for
// anything that is not JPEG, PNG or WebP.
func storePhoto(dir string, file multipart.File, originalName string) (string, error) {
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return "", errUnsupportedUpload
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	base := strings.TrimSuffix(utils.SanitizeFilename(originalName), filepath.Ext(originalName))
	if base == "" {
		base = "photo"
	}
	name := fmt.Sprintf("%s-%s%s", uuid.NewString(), base, ext)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return name, nil
}

// UploadHandler stores gallery and portfolio photos for the back office. The
// route is admin-only; client reference photos arrive through the booking
// form's multipart submission instead.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{Dir: dir}
}

// Upload accepts one multipart file under the "file" field and answers with
// the public path the stored file is served from.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "Le fichier dépasse 10 Mo"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Aucun fichier reçu"})
		return
	}
	defer file.Close()

	name, err := storePhoto(h.Dir, file, header.Filename)
	if err != nil {
		if errors.Is(err, errUnsupportedUpload) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Seuls les formats JPEG, PNG et WebP sont acceptés"})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"filename": name,
		"path":     "/api/images/" + name,
	})
}
