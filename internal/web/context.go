package web

import (
	"net/http"

	"github.com/JonMunkholm/storeadmin/internal/core"
	mw "github.com/JonMunkholm/storeadmin/internal/web/middleware"
)

// clientMetadata attaches the client address and user agent to the request
// context. RemoteAddr has already been resolved by TrustedRealIP.
func clientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithClient(r.Context(), mw.ClientIP(r.RemoteAddr), r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
