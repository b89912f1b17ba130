package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"learnhub/internal/model"
	"learnhub/internal/service"
	"learnhub/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const actorContextKey = contextKey("actor")

// UserLookup loads the account behind a token so bans and role changes apply
// immediately.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

func AuthMiddleware(jwtSecret string, users UserLookup, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeMessage(w, http.StatusUnauthorized, "No token provided")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeMessage(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}
			claims, err := util.ValidateJWT(parts[1], jwtSecret)
			if err != nil {
				logger.Debug().Err(err).Msg("Invalid token")
				writeMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load user for token")
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				writeMessage(w, http.StatusUnauthorized, "User not found")
				return
			}
			if user.IsBanned {
				writeMessage(w, http.StatusForbidden, "User is banned")
				return
			}

			ctx := WithActor(r.Context(), service.Actor{ID: user.ID, Role: user.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects callers whose role is not listed. It must run after
// AuthMiddleware.
func RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !slices.Contains(roles, actor.Role) {
				writeMessage(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithActor(ctx context.Context, actor service.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

func ActorFromContext(ctx context.Context) (service.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(service.Actor)
	return actor, ok
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
