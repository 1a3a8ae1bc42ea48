package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

// NewGuard builds route middleware that verifies the bearer token and checks
// its permission claims against the required view.
func NewGuard(secret []byte) Guard {
	return func(view string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, err := parseToken(r, secret)
				if err != nil {
					deny(w, http.StatusUnauthorized, "missing or invalid token")
					return
				}
				for _, p := range claims.Permissions {
					if p == view {
						next.ServeHTTP(w, r)
						return
					}
				}
				deny(w, http.StatusForbidden, "role does not grant access to "+view)
			})
		}
	}
}

func parseToken(r *http.Request, secret []byte) (*Claims, error) {
	header := r.Header.Get("Authorization")
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == "" || raw == header {
		return nil, jwt.NewValidationError("no bearer token", jwt.ValidationErrorMalformed)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
