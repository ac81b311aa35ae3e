package auth

import (
	"encoding/json"
	"net/http"
)

// Handler wires authentication into the HTTP server. It satisfies the
// server.RouteRegistrar interface without importing the server package.
type Handler struct {
	tokens *TokenService
}

// NewHandler creates an auth Handler around the given token service.
func NewHandler(tokens *TokenService) *Handler {
	return &Handler{tokens: tokens}
}

// RegisterRoutes registers auth endpoints on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/auth/whoami", h.handleWhoami)
}

// Middleware returns the token-validation middleware.
func (h *Handler) Middleware() func(http.Handler) http.Handler {
	return AuthMiddleware(h.tokens)
}

// handleWhoami returns the claims of the calling token.
func (h *Handler) handleWhoami(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	if claims == nil {
		writeAuthError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
