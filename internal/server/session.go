package server

import (
	"net/http"

	"fundpath/internal/utils"
)

const sessionIDPrefix = "ses"

// sessionID returns the visitor's form-session id from the signed cookie,
// issuing a new one when the cookie is missing or fails verification.
func (s *Service) sessionID(w http.ResponseWriter, r *http.Request) string {
	name := s.config.CookieName

	if c, err := r.Cookie(name); err == nil {
		var id string
		err = s.cookie.Decode(name, c.Value, &id)
		if err == nil && id != "" {
			return id
		}
		s.logger.WithError(err).Debug("discarding invalid session cookie")
	}

	id := utils.PrefixedNanoID(sessionIDPrefix)

	encoded, err := s.cookie.Encode(name, id)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		return id
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   s.config.SessionMaxAgeSec,
		HttpOnly: true,
		Secure:   s.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
