package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"skillbridge/internal/auth"
	"skillbridge/internal/models"
	"skillbridge/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	AccountContextKey   ContextKey = "account"
	IdentityContextKey  ContextKey = "identity"
	RequestIDContextKey ContextKey = "request_id"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	resolver       *auth.Resolver
	accountService *service.AccountService
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(resolver *auth.Resolver, accountService *service.AccountService) *Middleware {
	return &Middleware{
		resolver:       resolver,
		accountService: accountService,
	}
}

// RequireIdentity verifies the bearer credential and puts the resolved
// identity in the request context. It does not require a registered account;
// the registration endpoint runs behind this.
func (m *Middleware) RequireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.resolver.ResolveCredential(r.Header.Get("Authorization"))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// RequireAccount verifies the bearer credential and loads the registered
// account for it. Requests from identities with no account get a 404.
func (m *Middleware) RequireAccount(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.resolver.ResolveCredential(r.Header.Get("Authorization"))
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		account, err := m.accountService.Resolve(identity)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		ctx = context.WithValue(ctx, AccountContextKey, account)
		next(w, r.WithContext(ctx))
	}
}

// RequestID tags every request with a generated id, echoed in the
// X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		requestID, _ := r.Context().Value(RequestIDContextKey).(string)
		log.Printf("%s %s %s request_id=%s", r.Method, r.URL.Path, time.Since(start), requestID)
	})
}

// GetAccountFromContext retrieves the account from the request context
func GetAccountFromContext(ctx context.Context) *models.Account {
	account, ok := ctx.Value(AccountContextKey).(*models.Account)
	if !ok {
		return nil
	}
	return account
}

// GetIdentityFromContext retrieves the resolved identity from the request context
func GetIdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(auth.Identity)
	return identity, ok
}
