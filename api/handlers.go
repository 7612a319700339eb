package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"datalens/domain/core"
	"datalens/domain/report"
	"datalens/internal/apperrors"
	"datalens/internal/loader"
	"datalens/internal/render"
)

// analyzeResponse is the envelope returned by POST /analyze
type analyzeResponse struct {
	Status   string                `json:"status"`
	Success  bool                  `json:"success"`
	Filename string                `json:"filename"`
	Analysis *report.DatasetReport `json:"analysis"`
}

type errorResponse struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"supported_formats": loader.SupportedFormats()})
}

// handleAnalyze accepts a multipart upload under the "file" field, loads
// it, runs the full analysis and returns the report. Identical uploads are
// served from the cache, keyed by content hash plus filename extension.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	requestID := core.NewID()
	log := s.log.WithFields(logrus.Fields{"request_id": requestID})

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput("missing file upload"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput("could not read upload"))
		return
	}

	sum := sha256.Sum256(content)
	cacheKey := hex.EncodeToString(sum[:]) + header.Filename

	var rep *report.DatasetReport
	if cached, ok := s.cache.Get(cacheKey); ok {
		rep = cached.(*report.DatasetReport)
		log.WithField("filename", header.Filename).Debug("analysis served from cache")
	} else {
		tbl, err := s.loader.Read(content, header.Filename)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if tbl.RowCount() == 0 && tbl.ColumnCount() == 0 {
			writeError(w, http.StatusBadRequest, apperrors.InvalidInput("file contains no data"))
			return
		}
		rep, err = s.analyzer.AnalyzeAll(tbl)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		s.cache.Set(cacheKey, rep, int64(len(content)))
		log.WithFields(logrus.Fields{
			"filename": header.Filename,
			"rows":     rep.RowCount,
			"columns":  rep.ColumnCount,
		}).Info("analysis complete")
	}

	switch r.URL.Query().Get("format") {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, render.Markdown(header.Filename, rep))
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, render.HTML(header.Filename, rep))
	default:
		writeJSON(w, http.StatusOK, analyzeResponse{
			Status:   "success",
			Success:  true,
			Filename: header.Filename,
			Analysis: rep,
		})
	}
}

// statusFor maps application error codes to HTTP status codes
func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeUnsupportedFormat,
		apperrors.CodeParseError,
		apperrors.CodeInvalidInput,
		apperrors.CodeStructureInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Status: "error",
		Code:   apperrors.GetCode(err),
		Error:  err.Error(),
	})
}
