package middleware

import (
	"net/http"
	"strings"

	"pizza-service/internal/data/repository"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession rejects requests without a live session token and binds the
// caller's identity into the request context.
func AuthSession(tokens *utils.JWTManager, sessions repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, status := resolveIdentity(r, tokens, sessions, logger)
			switch status {
			case http.StatusOK:
				next.ServeHTTP(w, r.WithContext(utils.SetIdentity(r.Context(), identity)))
			case http.StatusInternalServerError:
				utils.ResponseInternalError(w)
			default:
				utils.ResponseUnauthorized(w)
			}
		})
	}
}

// OptionalAuth binds an identity when a valid token is present and otherwise
// lets the request through anonymously.
func OptionalAuth(tokens *utils.JWTManager, sessions repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, status := resolveIdentity(r, tokens, sessions, logger); status == http.StatusOK {
				r = r.WithContext(utils.SetIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin must run after AuthSession.
func Admin(message string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w)
				return
			}

			if !identity.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.Int64("user_id", identity.ID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func resolveIdentity(r *http.Request, tokens *utils.JWTManager, sessions repository.SessionRepository, logger *zap.Logger) (*utils.Identity, int) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, http.StatusUnauthorized
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, http.StatusUnauthorized
	}
	token := parts[1]

	claims, err := tokens.Parse(token)
	if err != nil {
		logger.Debug("Rejected token", zap.Error(err), zap.String("path", r.URL.Path))
		return nil, http.StatusUnauthorized
	}

	tokenID, err := claims.TokenID()
	if err != nil {
		return nil, http.StatusUnauthorized
	}

	// a signed token is only honored while its registry record is live
	session, err := sessions.FindValidSession(r.Context(), tokenID)
	if err != nil {
		logger.Error("Failed to validate session",
			zap.String("jti", tokenID.String()),
			zap.Error(err))
		return nil, http.StatusInternalServerError
	}

	if session == nil || session.UserID != claims.UserID {
		logger.Warn("Invalid or revoked session", zap.String("jti", tokenID.String()))
		return nil, http.StatusUnauthorized
	}

	return &utils.Identity{
		ID:      claims.UserID,
		Name:    claims.Name,
		Email:   claims.Email,
		Roles:   claims.Roles,
		TokenID: tokenID,
		Token:   token,
	}, http.StatusOK
}
