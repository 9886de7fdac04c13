package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/user"
)

// Token types
const (
	accessToken  = "access"
	refreshToken = "refresh"
)

const ctxUserKey = "user"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
	Type string `json:"typ"`
}

type authenticator struct {
	conf       middleware.JWTConfig
	appName    string
	accessTTL  time.Duration
	refreshTTL time.Duration
	userSvc    *user.Service

	jwt         echo.MiddlewareFunc
	optionalJWT echo.MiddlewareFunc // does nothing without an Authorization header
}

func newAuthenticator(conf *core.Config, userSvc *user.Service) *authenticator {
	a := &authenticator{
		conf: middleware.JWTConfig{
			SigningKey:    []byte(conf.JWTSecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    "userToken",
			Claims:        new(Claims),
		},
		appName:    conf.AppName,
		accessTTL:  conf.JWTExpirationDelta,
		refreshTTL: conf.JWTRefreshExpirationDelta,
		userSvc:    userSvc,
	}
	a.jwt = middleware.JWTWithConfig(a.conf)

	optConf := a.conf
	optConf.Skipper = func(ctx echo.Context) bool {
		return ctx.Request().Header.Get(echo.HeaderAuthorization) == ""
	}
	a.optionalJWT = middleware.JWTWithConfig(optConf)
	return a
}

// userClaims returns the claims of a token of type typ for usr.
func (a *authenticator) userClaims(usr user.User, typ string) *Claims {
	now := time.Now()
	ttl := a.accessTTL
	if typ == refreshToken {
		ttl = a.refreshTTL
	}
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.appName,
			Subject:   strconv.Itoa(usr.ID),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Role: usr.Role,
		Type: typ,
	}
}

// generateToken generates a signed JWT token string representing the user Claims.
func (a *authenticator) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.conf.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.conf.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// loginTokens returns a fresh access and refresh token pair for usr.
func (a *authenticator) loginTokens(usr user.User) (access string, refresh string, err error) {
	if access, err = a.generateToken(a.userClaims(usr, accessToken)); err != nil {
		return "", "", err
	}
	if refresh, err = a.generateToken(a.userClaims(usr, refreshToken)); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (a *authenticator) contextClaims(ctx echo.Context) (*Claims, bool) {
	if token, ok := ctx.Get(a.conf.ContextKey).(*jwt.Token); ok && token.Valid {
		if claims, ok := token.Claims.(*Claims); ok {
			return claims, true
		}
	}
	return nil, false
}

// contextUser returns the user the request's access token was issued to, nil error meaning it still exists.
func (a *authenticator) contextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(ctxUserKey).(user.User); ok {
		return usr, nil
	}

	claims, ok := a.contextClaims(ctx)
	if !ok || claims.Type != accessToken {
		return user.User{}, errHTTPUnauthorized
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return user.User{}, errHTTPUnauthorized
	}

	usr, err := a.userSvc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, errHTTPUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(ctxUserKey, usr)
	return usr, nil
}

type authApi struct {
	auth    *authenticator
	userSvc *user.Service
}

func registerAuthAPI(r *router, deps *Deps) {
	api := authApi{auth: r.auth, userSvc: deps.UserSvc}

	r.add(http.MethodPost, "/login", public, api.login)
	r.add(http.MethodGet, "/verify/:token", public, api.verifyEmail)
}

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
)

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	usr, err := api.userSvc.Authenticate(ctx.Request().Context(), data.Email, data.Password, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	access, refresh, err := api.auth.loginTokens(usr)
	if err != nil {
		return errors.Wrap(err, "generating tokens")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{AccessToken: access, RefreshToken: refresh})
}

func (api *authApi) verifyEmail(ctx echo.Context) error {
	if _, err := api.userSvc.VerifyEmail(ctx.Request().Context(), ctx.Param("token"), dbExec(ctx)); err != nil {
		return errors.Wrap(err, "verifying email")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Email verified successfully"})
}
