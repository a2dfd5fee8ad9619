package web

import (
	"net/http"
	"strings"

	"github.com/FUCKiro/flappyseal-app/internal/identity"
)

// bearerToken extracts the identity token from the Authorization header or,
// for browsers that cannot set headers on websockets, the token query
// parameter.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

// identify returns who is playing. Missing or bad tokens mean anonymous
// play; the game still runs.
func (s *Server) identify(r *http.Request) identity.Provider {
	token := bearerToken(r)
	if s.verifier == nil || token == "" {
		return identity.Anonymous{}
	}
	if _, err := s.verifier.Verify(token); err != nil {
		s.logger.Debug("rejected identity token", "remote", r.RemoteAddr, "err", err)
		return identity.Anonymous{}
	}
	return identity.NewTokenProvider(s.verifier, token)
}
