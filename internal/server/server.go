// Package server exposes the upload and ask endpoints over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"schedassist/internal/adapter/extract"
	"schedassist/internal/domain"
	"schedassist/internal/logger"
	"schedassist/internal/usecase"
)

// maxUploadBytes bounds multipart memory use for schedule uploads.
const maxUploadBytes = 32 << 20

// Server wraps the HTTP server around the ingest and ask use cases.
type Server struct {
	httpServer *http.Server
	ingest     *usecase.IngestUseCase
	ask        *usecase.AskUseCase
	uploadDir  string
}

// New creates a server listening on addr. Uploaded files are staged
// under uploadDir and always removed after processing.
func New(addr, uploadDir string, ingest *usecase.IngestUseCase, ask *usecase.AskUseCase) *Server {
	s := &Server{
		ingest:    ingest,
		ask:       ask,
		uploadDir: uploadDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload-file/", s.handleUpload)
	mux.HandleFunc("GET /ask/", s.handleAsk)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe runs the server until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	logger.Info("listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// uploadResponse mirrors the original upload reply, plus the indexed
// chunk count as the observable success signal.
type uploadResponse struct {
	Message string `json:"message"`
	Indexed int    `json:"indexed"`
}

// askResponse preserves the original wire field names.
type askResponse struct {
	Availability      domain.Availability `json:"availability"`
	NextAvailableSlot string              `json:"next_available_time_slot"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !extract.SupportedFilename(header.Filename) {
		writeError(w, http.StatusBadRequest, "Unsupported file type. Please upload a PDF or TXT file.")
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Stage under a unique name so concurrent uploads of the same file
	// cannot collide. The staged copy is removed no matter what.
	dest := filepath.Join(s.uploadDir, uuid.NewString()+"_"+filepath.Base(header.Filename))
	if err := saveTo(dest, file); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer func() {
		if err := os.Remove(dest); err != nil {
			logger.Warn("failed to remove uploaded file %s: %v", dest, err)
		}
	}()

	count, err := s.ingest.IngestFile(r.Context(), dest)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message: fmt.Sprintf("File '%s' uploaded and indexed successfully!", header.Filename),
		Indexed: count,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter")
		return
	}

	ans, err := s.ask.Ask(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrNoScheduleData) {
			writeError(w, http.StatusNotFound, "No schedule data found.")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing query: %s", err))
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Availability:      ans.Availability,
		NextAvailableSlot: ans.NextSlot,
	})
}

func saveTo(dest string, src io.Reader) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating upload file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("writing upload file: %w", err)
	}
	return out.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
