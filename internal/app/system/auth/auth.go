package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

/*─────────────────────────────────────────────────────────────────────────────*
 | Session constants & globals                                                 |
 *─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey       = "is_authenticated"
	userIDKey       = "user_id"
	userNameKey     = "user_name"
	userFullNameKey = "user_full_name"
	companyIDKey    = "company_id"
	companyNameKey  = "company_name"
	scopeKey        = "collection_id"
	kindKey         = "company_kind"
	roleKey         = "user_role"
)

// SessionName is configurable because the portal that issues the cookie owns
// the name; we only read it.
var SessionName = "freighthub-session"

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// InitSessionStore configures the shared cookie store. keys and domain must
// match the portal that issues the session cookie.
func InitSessionStore(keys [][]byte, domain string) {
	Store = sessions.NewCookieStore(keys...)
	Store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Current-User helper                                                         |
 *─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what the portal cached in the session & we inject into
// r.Context(). Scope is the collection id of the user's company, Kind is
// "vendor" or "customer".
type SessionUser struct {
	ID          string
	Name        string
	FullName    string
	CompanyID   string
	CompanyName string
	Scope       string
	Kind        string
	Role        string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser returns a request whose context carries u. Handler tests use
// it to bypass cookie decoding.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// NewSessionCookie encodes u into a cookie the configured store accepts.
// The portal normally mints these; tests and local tooling use this to get
// a decodable session without the portal.
func NewSessionCookie(u *SessionUser) (*http.Cookie, error) {
	if Store == nil {
		return nil, fmt.Errorf("session store not initialized")
	}
	values := map[interface{}]interface{}{
		isAuthKey:       true,
		userIDKey:       u.ID,
		userNameKey:     u.Name,
		userFullNameKey: u.FullName,
		companyIDKey:    u.CompanyID,
		companyNameKey:  u.CompanyName,
		scopeKey:        u.Scope,
		kindKey:         u.Kind,
		roleKey:         u.Role,
	}
	encoded, err := securecookie.EncodeMulti(SessionName, values, Store.Codecs...)
	if err != nil {
		return nil, err
	}
	return sessions.NewCookie(SessionName, encoded, Store.Options), nil
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Middleware                                                                  |
 *─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser injects the user into context if they are logged in.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := Store.Get(r, SessionName)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:          getString(sess, userIDKey),
				Name:        getString(sess, userNameKey),
				FullName:    getString(sess, userFullNameKey),
				CompanyID:   getString(sess, companyIDKey),
				CompanyName: getString(sess, companyNameKey),
				Scope:       getString(sess, scopeKey),
				Kind:        getString(sess, kindKey),
				Role:        getString(sess, roleKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// API callers get a plain 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireKind ensures the signed-in user's company is one of the allowed
// kinds ("vendor", "customer"). Assignment is vendor-side, approval is
// customer-side.
func RequireKind(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		set[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, allowed := set[strings.ToLower(u.Kind)]; !allowed {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func getString(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}
