package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"lueurstudio/internal/imaging"
)

// ImageHandler serves stored photos. Requests that look like downloads get a
// watermarked derivative; in-page displays get the original bytes.
type ImageHandler struct {
	Dir       string
	Watermark string
	Log       *zap.SugaredLogger
}

func NewImageHandler(dir, watermark string, log *zap.SugaredLogger) *ImageHandler {
	return &ImageHandler{Dir: dir, Watermark: watermark, Log: log}
}

func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(mux.Vars(r)["filename"])
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Nom de fichier invalide"})
		return
	}

	src, err := os.ReadFile(filepath.Join(h.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Image non trouvée"})
			return
		}
		writeError(w, err)
		return
	}

	if !imaging.IsDownloadRequest(r) {
		format, err := imaging.SniffFormat(src)
		if err != nil {
			writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "Format d'image non reconnu"})
			return
		}
		w.Header().Set("Content-Type", imaging.ContentType(format))
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.Write(src)
		return
	}

	marked, format, err := imaging.Watermark(src, h.Watermark)
	if err != nil {
		// Serve the original rather than failing the download.
		h.Log.Warnw("watermarking failed, serving original", "file", name, "error", err)
		format, sniffErr := imaging.SniffFormat(src)
		if sniffErr != nil {
			writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "Format d'image non reconnu"})
			return
		}
		w.Header().Set("Content-Type", imaging.ContentType(format))
		w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(src)
		return
	}

	w.Header().Set("Content-Type", imaging.ContentType(format))
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(marked)
}
