package auth

import (
	"context"
	"net/http"
)

type contextKey string

const loginKey contextKey = "login"

type AuthenticateMiddleware struct {
	Secret []byte
}

func (m *AuthenticateMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		login, err := VerifyAdmin(r, m.Secret)
		if err != nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), loginKey, login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetAuthenticatedLogin(r *http.Request) (string, bool) {
	login, ok := r.Context().Value(loginKey).(string)
	return login, ok
}
