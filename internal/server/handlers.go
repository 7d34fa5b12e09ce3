package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pypin/pkg/dates"
	"github.com/matzehuels/pypin/pkg/errors"
	"github.com/matzehuels/pypin/pkg/manifest"
	"github.com/matzehuels/pypin/pkg/resolve"
)

type packageResponse struct {
	Package    string    `json:"package"`
	Version    string    `json:"version"`
	Date       string    `json:"date"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type diagnostic struct {
	Line    int    `json:"line"`
	Package string `json:"package"`
	Code    string `json:"code"`
	Status  int    `json:"upstream_status,omitempty"`
	Error   string `json:"error"`
}

type manifestResponse struct {
	Date        string       `json:"date"`
	Output      string       `json:"output"`
	Pinned      int          `json:"pinned"`
	Diagnostics []diagnostic `json:"diagnostics"`
}

type errorResponse struct {
	Code   string `json:"code"`
	Status int    `json:"upstream_status,omitempty"`
	Error  string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	date, err := dates.Parse(r.URL.Query().Get("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := chi.URLParam(r, "name")
	if err := errors.ValidatePythonPackageName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.newResolver().Resolve(r.Context(), name, date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageResponse{
		Package:    name,
		Version:    res.Version,
		Date:       date.String(),
		UploadedAt: res.UploadedAt,
	})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	date, err := dates.Parse(r.URL.Query().Get("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Code:  "REQUEST_TOO_LARGE",
			Error: "manifest too large",
		})
		return
	}

	rw := manifest.NewRewriter(s.newResolver(), manifest.Options{Logger: s.logger})
	out, err := rw.Rewrite(r.Context(), splitLines(string(body)), date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := manifestResponse{
		Date:        date.String(),
		Output:      out.String(),
		Pinned:      out.Pinned,
		Diagnostics: make([]diagnostic, 0, len(out.Diagnostics)),
	}
	for _, d := range out.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, diagnostic{
			Line:    d.Line,
			Package: d.Package,
			Code:    string(errors.GetCode(d.Err)),
			Status:  errors.StatusOf(d.Err),
			Error:   d.Error(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) newResolver() *resolve.Resolver {
	return resolve.NewResolver(s.fetcher, resolve.Options{Logger: s.logger})
}

// splitLines splits a manifest body, accepting \n and \r\n endings.
// A trailing newline does not produce an extra empty line.
func splitLines(body string) []string {
	body = strings.TrimSuffix(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("request failed", "id", RequestIDFrom(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Code:   string(code),
		Status: errors.StatusOf(err),
		Error:  errors.UserMessage(err),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidDateFormat, errors.ErrCodeInvalidPackage:
		return http.StatusBadRequest
	case errors.ErrCodePackageNotFound, errors.ErrCodeNoQualifyingRelease:
		return http.StatusNotFound
	case errors.ErrCodeFetch, errors.ErrCodeNetwork, errors.ErrCodeInvalidResponse:
		return http.StatusBadGateway
	case errors.ErrCodeInterrupted:
		return 499 // client closed request
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
