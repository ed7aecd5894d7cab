package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core/project"
	"github.com/rohitbokare05/Project-Connect-IITR/core/session"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

type projectApi struct {
	svc  *project.Service
	usrs *user.Service
}

func registerProjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *project.Service, usrs *user.Service) {
	api := projectApi{svc: svc, usrs: usrs}

	// student endpoints
	sg := g.Group("/projects", jwt, roleMiddleware(session.PathStudentDashboard))
	sg.GET("", api.browse)
	sg.POST("/:id/contact", api.contact)

	// faculty endpoints
	fg := g.Group("/faculty/projects", jwt, roleMiddleware(session.PathFacultyDashboard))
	fg.GET("", api.facultyList)
	fg.POST("", api.create)
	fg.PUT("/:id/status", api.toggleStatus)
	fg.DELETE("/:id", api.destroy)
}

// Handlers

// browse lists open projects, filtered by the search text and skill query
// params. The skill dropdown values come from the unfiltered open set.
func (api *projectApi) browse(ctx echo.Context) error {
	open, err := api.svc.Open(ctx.Request().Context())
	if err != nil {
		return err
	}

	skills := project.Skills(open)
	filtered := project.Filter(open, ctx.QueryParam("search"), ctx.QueryParam("skill"))

	return ctx.JSON(http.StatusOK, BrowseResponse{Projects: filtered, Skills: skills})
}

func (api *projectApi) contact(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	usr, err := api.usrs.Get(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "loading student record")
	}

	msg, err := api.svc.Contact(ctx.Request().Context(), ctx.Param("id"), usr)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *projectApi) facultyList(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	projects, err := api.svc.ByFaculty(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, FacultyListResponse{
		Projects: projects,
		Counts:   api.svc.CountsFor(projects),
	})
}

func (api *projectApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data project.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}

	p, err := api.svc.Create(ctx.Request().Context(), claims.Subject, claims.Email, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *projectApi) toggleStatus(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	p, err := api.svc.ToggleStatus(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *projectApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.Delete(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	BrowseResponse struct {
		Projects []project.Project `json:"projects"`
		Skills   []string          `json:"skills"`
	}

	FacultyListResponse struct {
		Projects []project.Project `json:"projects"`
		Counts   project.Counts    `json:"counts"`
	}
)
