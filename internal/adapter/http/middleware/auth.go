package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"chefe_local/internal/domain/entities"
	"chefe_local/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

var errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid bearer token", http.StatusUnauthorized)

// Claims is the token payload accepted by the API. The subject is the user id.
type Claims struct {
	Admin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Auth validates an HS256 bearer token and stores the caller Session in the
// gin context. Requests without a valid token stop here with 401.
func Auth(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || secret == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		claims := &Claims{}
		_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || strings.TrimSpace(claims.Subject) == "" {
			if err == nil {
				err = errors.New("empty subject")
			}
			log.Printf("[auth][middleware] token rejected path=%s err=%v", c.FullPath(), err)
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		c.Set(sessionKey, entities.Session{UserID: claims.Subject, Admin: claims.Admin})
		c.Next()
	}
}

// SessionFrom returns the session set by Auth, or a zero Session.
func SessionFrom(c *gin.Context) entities.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(entities.Session); ok {
			return s
		}
	}
	return entities.Session{}
}

// WithSession stores s in the context. Used by tests and internal callers.
func WithSession(c *gin.Context, s entities.Session) {
	c.Set(sessionKey, s)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
