package echoapi

import (
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/extension"
	"github.com/trezcool/educonnect/core/feewaiver"
	"github.com/trezcool/educonnect/core/material"
	inmemdb "github.com/trezcool/educonnect/storage/inmem"
)

type teacherAPI struct {
	db        *inmemdb.DB
	validator *core.Validator
}

// register mounts every teacher endpoint on the same paths the dashboard calls.
func (api *teacherAPI) register(e *echo.Echo, jwt echo.MiddlewareFunc) {
	route := func(ep core.Endpoint, h echo.HandlerFunc) {
		e.Add(ep.Method, ep.Path, h, jwt)
	}

	route(class.QueryEndpoint, api.queryClasses)
	route(class.CreateEndpoint, api.createClass)
	route(class.UpdateEndpoint, api.updateClass)
	route(class.DeleteEndpoint, api.deleteClass)

	route(material.UploadEndpoint, api.uploadMaterial)

	route(feewaiver.QueryEndpoint, api.queryFeeWaivers)
	route(feewaiver.DecideEndpoint, api.decideFeeWaiver)

	route(extension.QueryEndpoint, api.queryExtensions)
	route(extension.HandleEndpoint, api.decideExtension)
}

// Handlers

func (api *teacherAPI) queryClasses(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.db.QueryClasses(claims.Subject))
}

func (api *teacherAPI) createClass(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	c, err := api.bindClass(ctx)
	if err != nil {
		return err
	}
	c.TeacherID = claims.Subject
	return ctx.JSON(http.StatusCreated, api.db.CreateClass(c))
}

func (api *teacherAPI) updateClass(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	c, err := api.bindClass(ctx)
	if err != nil {
		return err
	}
	c.ID = ctx.Param("id")
	c.TeacherID = claims.Subject

	c, err = api.db.UpdateClass(c)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *teacherAPI) deleteClass(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err = api.db.DeleteClass(claims.Subject, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Class deleted successfully"})
}

func (api *teacherAPI) uploadMaterial(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	fd, err := bindForm(ctx)
	if err != nil {
		return err
	}
	nm := material.NewMaterial{
		ClassID:    ctx.Param("id"),
		Title:      core.CleanString(fd.Value("title")),
		LessonName: core.CleanString(fd.Value("lessonName")),
		Type:       fd.Value("type"),
		Content:    core.CleanString(fd.Value("content")),
		File:       fd.File("file"),
		UploadDate: fd.Value("uploadDate"),
	}
	if err = api.validator.Validate(nm).Err(); err != nil {
		return err
	}

	m := material.Material{
		ClassID:    nm.ClassID,
		Title:      nm.Title,
		LessonName: nm.LessonName,
		Type:       nm.Type,
		Content:    nm.Content,
		UploadDate: nm.UploadDate,
	}
	if nm.Type != material.TypeLink {
		if m.Content, err = api.saveFile(nm.File); err != nil {
			return err
		}
	}
	m, err = api.db.CreateMaterial(claims.Subject, m)
	if err != nil {
		return errors.Wrap(err, "creating material")
	}
	return ctx.JSON(http.StatusCreated, material.UploadResult{Message: "Material uploaded", Material: m})
}

func (api *teacherAPI) queryFeeWaivers(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.db.QueryFeeWaivers(claims.Subject))
}

func (api *teacherAPI) decideFeeWaiver(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var d feewaiver.Decision
	if err = ctx.Bind(&d); err != nil {
		return errors.Wrap(err, "binding to feewaiver.Decision")
	}
	if err = api.validator.Validate(d).Err(); err != nil {
		return err
	}

	r, err := api.db.DecideFeeWaiver(claims.Subject, ctx.Param("id"), d)
	if err != nil {
		return errors.Wrap(err, "deciding fee waiver")
	}
	return ctx.JSON(http.StatusOK, feewaiver.DecideResult{FeeWaiver: r})
}

func (api *teacherAPI) queryExtensions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.db.QueryExtensions(claims.Subject))
}

func (api *teacherAPI) decideExtension(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var d extension.Decision
	if err = ctx.Bind(&d); err != nil {
		return errors.Wrap(err, "binding to extension.Decision")
	}
	if err = api.validator.Validate(d).Err(); err != nil {
		return err
	}

	r, err := api.db.DecideExtension(claims.Subject, d)
	if err != nil {
		return errors.Wrap(err, "deciding extension")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Request " + r.Status})
}

// Helpers

// bindClass reads and validates a class form. The cover photo, if any, is stored.
func (api *teacherAPI) bindClass(ctx echo.Context) (class.Class, error) {
	fd, err := bindForm(ctx)
	if err != nil {
		return class.Class{}, err
	}
	nc := class.NewClass{
		Subject:     core.CleanString(fd.Value("subject")),
		MonthlyFee:  fd.Value("monthlyFee"),
		Description: core.CleanString(fd.Value("description")),
		CoverPhoto:  fd.File("coverPhoto"),
	}
	if err = api.validator.Validate(nc).Err(); err != nil {
		return class.Class{}, err
	}

	c := class.Class{
		Subject:     nc.Subject,
		MonthlyFee:  nc.Fee(),
		Description: nc.Description,
	}
	if nc.CoverPhoto != nil {
		if c.CoverPhoto, err = api.saveFile(nc.CoverPhoto); err != nil {
			return class.Class{}, err
		}
	}
	return c, nil
}

func (api *teacherAPI) saveFile(a *core.Attachment) (string, error) {
	r, err := a.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening upload")
	}
	defer r.Close()

	content, err := ioutil.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "reading upload")
	}
	return api.db.SaveFile(inmemdb.File{Name: a.Filename, MediaType: a.MediaType, Content: content}), nil
}

// serveUpload serves stored files without authentication, like the static uploads of the backend.
func serveUpload(db *inmemdb.DB) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		f, err := db.GetFile("/uploads/" + ctx.Param("name"))
		if err != nil {
			return err
		}
		return ctx.Blob(http.StatusOK, f.MediaType, f.Content)
	}
}
