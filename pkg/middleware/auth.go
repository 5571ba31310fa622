package middleware

import (
	"net/http"
	"strings"

	"car-rental/internal/data/repository"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth validates the bearer JWT, then loads the user so that the role in the
// request context is the stored one. Deactivated or deleted accounts are
// rejected even while their token is still valid.
func Auth(tokens *utils.TokenManager, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				logger.Warn("Invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Validate has already checked the ID format
			userID := uuid.MustParse(claims.UserID)

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Auth: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Auth: token for unknown user", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}
			if !user.IsActive {
				logger.Warn("Auth: deactivated account",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Account is deactivated")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the stored admin role placed in the context by Auth. Must run after Auth.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !utils.IsAdminContext(r.Context()) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
