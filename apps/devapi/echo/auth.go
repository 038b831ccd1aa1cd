package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
)

const contextTokenKey = "userToken"

// Teacher is who a token is issued to.
type Teacher struct {
	ID    string
	Name  string
	Email string
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Credential is the teacher of the claims, for logging.
func (c Claims) Credential() core.Credential {
	return core.Credential{UserID: c.Subject, Name: c.Name, Email: c.Email}
}

type authenticator struct {
	appName string
	expiry  time.Duration
	config  middleware.JWTConfig
}

func newAuthenticator(conf *core.Config) *authenticator {
	return &authenticator{
		appName: conf.AppName,
		expiry:  conf.DevAPI.JWTExpirationDelta,
		config: middleware.JWTConfig{
			SigningKey:    []byte(conf.DevAPI.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

func (a *authenticator) claims(t Teacher) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.appName,
			Subject:   t.ID,
			ExpiresAt: now.Add(a.expiry).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:  t.Name,
		Email: t.Email,
	}
}

// GenerateToken generates a signed JWT token string for the teacher.
func GenerateToken(conf *core.Config, t Teacher) (string, error) {
	a := newAuthenticator(conf)
	method := jwt.GetSigningMethod(a.config.SigningMethod)
	token := jwt.NewWithClaims(method, a.claims(t))

	ss, err := token.SignedString(a.config.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
