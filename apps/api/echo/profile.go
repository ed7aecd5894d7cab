package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core/session"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

type profileApi struct {
	svc *user.Service
}

func registerProfileAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service) {
	api := profileApi{svc: svc}

	pg := g.Group("/profile", jwt)
	pg.GET("", api.retrieve)
	pg.PUT("", api.update)
	pg.POST("/resume", api.uploadResume, roleMiddleware(session.PathStudentProfile))
}

// Handlers

func (api *profileApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	usr, err := api.svc.Profile(ctx.Request().Context(), claims.Subject, user.Role(claims.Role))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

// update binds the role-appropriate form; each role edits only its own fields.
func (api *profileApi) update(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var usr user.User
	switch user.Role(claims.Role) {
	case user.RoleStudent:
		var data user.StudentProfile
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to StudentProfile")
		}
		usr, err = api.svc.UpdateStudentProfile(ctx.Request().Context(), claims.Subject, data)
	case user.RoleFaculty:
		var data user.FacultyProfile
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to FacultyProfile")
		}
		usr, err = api.svc.UpdateFacultyProfile(ctx.Request().Context(), claims.Subject, data)
	default:
		return errHttpForbidden
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *profileApi) uploadResume(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	fh, err := ctx.FormFile("resume")
	if err != nil {
		// validation owns the "no file" message
		return user.ResumeFile{}.Validate()
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded resume")
	}
	defer src.Close()

	usr, err := api.svc.SaveResume(ctx.Request().Context(), claims.Subject, user.ResumeFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     src,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}
