package auth

import (
	"context"
	"fmt"
	"net/http"

	"ms-admin-dashboard/internal/logger"
	"ms-admin-dashboard/internal/utils"
)

type contextKey string

const clientKey contextKey = "auth_client"

// AdminOnly verifies the bearer token and requires the admin role. Every
// failure path returns the same generic 401 body; the client must not be
// able to tell "not logged in" from "logged in but not admin".
func AdminOnly(verifier Verifier, cache *VerifyCache, adminRole string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			client := cache.Get(r.Context(), rawToken)
			if client == nil {
				client, err = verifier.Verify(r.Context(), rawToken)
				if err != nil {
					if log != nil {
						log.LogSecurity("VERIFY", fmt.Sprintf("Token verification failed: %v", err))
					}
					utils.Error(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				cache.Set(r.Context(), rawToken, client)
			}

			if !client.HasRole(adminRole) {
				if log != nil {
					log.LogSecurity("ROLE", fmt.Sprintf("User %s lacks role %q", client.UserID, adminRole))
				}
				utils.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), clientKey, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientFromContext returns the verified client injected by AdminOnly.
func ClientFromContext(ctx context.Context) *Client {
	if c, ok := ctx.Value(clientKey).(*Client); ok {
		return c
	}
	return nil
}
