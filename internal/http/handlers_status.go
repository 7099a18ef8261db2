package httpx

import (
	"net/http"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
)

type authStatus struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
}

// AuthStatus reports the restored session of the client.
// GET /auth/status.
func (h *Handlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if !sess.Valid() {
		WriteJSON(w, http.StatusOK, authStatus{})
		return
	}
	WriteJSON(w, http.StatusOK, authStatus{Authenticated: true, User: sess.User})
}

// healthHandler answers liveness probes.
// GET|HEAD /healthz.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
