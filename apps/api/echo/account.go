package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core/auth"
	"github.com/rohitbokare05/Project-Connect-IITR/core/session"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

type authApi struct {
	svc   *auth.Service
	users user.Repository
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *auth.Service, users user.Repository) {
	api := authApi{svc: svc, users: users}

	ag := g.Group("/auth")
	ag.POST("/register", api.register)
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout, jwt)
	ag.POST("/token-refresh", api.refreshToken, jwt)

	g.GET("/session", api.session, jwt)
}

// Handlers

func (api *authApi) register(ctx echo.Context) error {
	var data auth.Registration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Registration")
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return err
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusCreated, AuthResponse{
		Token:    token,
		User:     usr,
		Redirect: session.DashboardPath(usr.Role),
	})
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	usr, err := api.svc.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, AuthResponse{
		Token:    token,
		User:     usr,
		Redirect: session.DashboardPath(usr.Role),
	})
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "signing out")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

// session resolves the caller's state against the users collection and
// answers where the client should land for the requested page.
func (api *authApi) session(ctx echo.Context) error {
	identity, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	state, err := session.ResolveIdentity(ctx.Request().Context(), api.users, identity)
	if err != nil {
		return errors.Wrap(err, "resolving session")
	}

	requested := ctx.QueryParam("path")
	if requested == "" {
		requested = session.PathLogin
	}

	return ctx.JSON(http.StatusOK, SessionResponse{
		Authenticated: state.Authenticated(),
		User:          state.User,
		Role:          state.Role,
		Redirect:      session.Resolve(state.Authenticated(), state.Role, requested),
	})
}

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	AuthResponse struct {
		Token    string    `json:"token"`
		User     user.User `json:"user"`
		Redirect string    `json:"redirect"`
	}

	SessionResponse struct {
		Authenticated bool       `json:"authenticated"`
		User          *user.User `json:"user,omitempty"`
		Role          user.Role  `json:"role,omitempty"`
		Redirect      string     `json:"redirect"`
	}
)
