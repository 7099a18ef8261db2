package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
)

// Handlers serves the browser-facing pages. Per-request dependencies (the
// Session Store and the backend) come from the request context.
type Handlers struct {
	T                 *TemplateRenderer
	MinPasswordLength int
	Logger            *slog.Logger
}

func (h *Handlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// renderParams groups the inputs of render.
type renderParams struct {
	Status  int
	Page    string
	Title   string
	Content any
	Notice  string
	Error   string
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, p renderParams) {
	if p.Status == 0 {
		p.Status = http.StatusOK
	}
	data := PageData{
		Title:       p.Title,
		CurrentPage: r.URL.Path,
		User:        SessionFromContext(r.Context()).User,
		CSRFToken:   GetCSRFToken(r),
		Notice:      p.Notice,
		Error:       p.Error,
		Content:     p.Content,
	}
	if err := h.T.Render(w, p.Status, p.Page, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render page", "page", p.Page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// requestStateOr500 fetches the per-request state or fails the request.
// Only a wiring mistake leaves it missing.
func (h *Handlers) requestStateOr500(w http.ResponseWriter, r *http.Request) (*requestState, bool) {
	st, ok := stateFrom(r.Context())
	if !ok {
		h.logger().ErrorContext(r.Context(), "session middleware not installed", "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

// statusFor maps an error to the status of the page that reports it.
func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeRejected:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Status >= 400 && appErr.Status < 500 {
			return appErr.Status
		}
		return http.StatusBadRequest
	case apperrors.ErrCodeUpstream, apperrors.ErrCodeMalformed:
		return http.StatusBadGateway
	case apperrors.ErrCodeTransport:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
