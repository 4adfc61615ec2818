package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/OtlotlengMajuja/storefront/internal/auth"
	"github.com/OtlotlengMajuja/storefront/pkg/httputil"
	"github.com/OtlotlengMajuja/storefront/pkg/middleware"
	"github.com/OtlotlengMajuja/storefront/pkg/validator"
)

// SessionHandler exchanges verified identity tokens for session cookies.
type SessionHandler struct {
	jwt    *auth.JWTManager
	secure bool
	logger *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler. The secure flag
// controls the Secure attribute on issued cookies and should only be false
// in local development.
func NewSessionHandler(jwt *auth.JWTManager, secure bool, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		jwt:    jwt,
		secure: secure,
		logger: logger,
	}
}

// SessionRequest is the JSON request body for creating a session.
type SessionRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// SessionClaims is the JSON shape of the authenticated identity.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateSession handles POST /api/v1/session
//
// It verifies the supplied identity token and, on success, sets an HTTP-only
// session cookie carrying a freshly issued session token.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	claims, err := h.jwt.ValidateSessionToken(req.IDToken)
	if err != nil {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"},
		})
		return
	}

	sessionToken, err := h.jwt.GenerateSessionToken(claims.Email, claims.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(h.jwt.Expiry().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})

	h.logger.InfoContext(r.Context(), "session created",
		slog.String("email", claims.Email),
	)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: SessionClaims{Email: claims.Email, Name: claims.Name},
	})
}

// Logout handles POST /api/v1/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "logged out"},
	})
}

// GetUser handles GET /api/v1/user
//
// Mounted behind the auth middleware; the identity is already verified.
func (h *SessionHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: SessionClaims{
			Email: middleware.EmailFromContext(r.Context()),
			Name:  middleware.NameFromContext(r.Context()),
		},
	})
}
