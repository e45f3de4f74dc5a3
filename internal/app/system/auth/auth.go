// Package auth resolves bearer tokens into the authenticated group for a
// request and gates privileged routes.
//
// The session reference is an opaque token issued at login and presented on
// an Authorization: Bearer header. There is no ambient credential state:
// every request resolves its own session from the store.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sayamjn/SHG/internal/app/store/sessions"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SessionGroup is what LoadSession injects into r.Context() for an
// authenticated request.
type SessionGroup struct {
	ID   primitive.ObjectID
	Code string
	Name string
}

// GroupFetcher loads fresh group identity data for a session on each
// request, so deactivated groups lose access immediately.
type GroupFetcher interface {
	FetchGroup(ctx context.Context, id primitive.ObjectID) (SessionGroup, error)
}

type ctxKey string

const currentGroupKey ctxKey = "currentGroup"

// CurrentGroup returns the authenticated group and a "found?" flag.
func CurrentGroup(r *http.Request) (*SessionGroup, bool) {
	g, ok := r.Context().Value(currentGroupKey).(*SessionGroup)
	return g, ok
}

// SessionManager resolves bearer tokens against the session store.
type SessionManager struct {
	sessions *sessions.Store
	fetcher  GroupFetcher
	log      *zap.Logger
}

// NewSessionManager constructs a SessionManager over the session store.
func NewSessionManager(store *sessions.Store, logger *zap.Logger) *SessionManager {
	return &SessionManager{sessions: store, log: logger}
}

// SetGroupFetcher installs the fetcher used to load group identity data.
func (sm *SessionManager) SetGroupFetcher(f GroupFetcher) {
	sm.fetcher = f
}

// LoadSession injects the authenticated group into context when the request
// carries a valid bearer token. Requests without a token, or with a token
// that does not resolve, continue without a group; RequireGroup decides
// whether that is fatal.
func (sm *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		groupID, err := sm.sessions.Resolve(ctx, token)
		if err != nil {
			cancel()
			if err != sessions.ErrNoSession {
				sm.log.Warn("session resolve failed", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		sg := SessionGroup{ID: groupID}
		if sm.fetcher != nil {
			fresh, err := sm.fetcher.FetchGroup(ctx, groupID)
			if err != nil {
				cancel()
				// Group gone or disabled since login: treat as signed out.
				next.ServeHTTP(w, r)
				return
			}
			sg = fresh
		}
		cancel()

		next.ServeHTTP(w, withGroup(r, &sg))
	})
}

// RequireGroup ensures there is an authenticated group in context (set by
// LoadSession) and answers 401 otherwise.
func (sm *SessionManager) RequireGroup(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentGroup(r); !ok {
			httpapi.Unauthorized(w, "Not authorized to access this route")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the token from an Authorization: Bearer header.
// Returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// WithTestGroup injects a group into the request context. Test helper only;
// production requests go through LoadSession.
func WithTestGroup(r *http.Request, g *SessionGroup) *http.Request {
	return withGroup(r, g)
}

func withGroup(r *http.Request, g *SessionGroup) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentGroupKey, g))
}
