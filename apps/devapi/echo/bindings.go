package echoapi

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
)

// maxMemory is the part of a multipart form kept in memory, the rest goes to temp files.
const maxMemory = 32 << 20

// formData is a request body read as text fields and files, whatever its encoding.
// Numbers sent as JSON become their decimal text, so drafts see what a form would have sent.
type formData struct {
	values map[string]string
	files  map[string]*core.Attachment
}

func (fd formData) Value(name string) string { return fd.values[name] }

func (fd formData) File(name string) *core.Attachment { return fd.files[name] }

func bindForm(ctx echo.Context) (formData, error) {
	fd := formData{values: make(map[string]string), files: make(map[string]*core.Attachment)}

	ctype := ctx.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		form, err := ctx.MultipartForm()
		if err != nil {
			return fd, echo.NewHTTPError(http.StatusBadRequest, "malformed multipart form").SetInternal(err)
		}
		for name, vals := range form.Value {
			if len(vals) > 0 {
				fd.values[name] = vals[0]
			}
		}
		for name, fhs := range form.File {
			if len(fhs) == 0 {
				continue
			}
			a, err := readAttachment(fhs[0])
			if err != nil {
				return fd, errors.Wrapf(err, "reading file %s", name)
			}
			fd.files[name] = a
		}
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		var raw map[string]interface{}
		if err := json.NewDecoder(ctx.Request().Body).Decode(&raw); err != nil {
			return fd, echo.NewHTTPError(http.StatusBadRequest, "malformed json body").SetInternal(err)
		}
		for name, v := range raw {
			fd.values[name] = textOf(v)
		}
	case ctx.Request().ContentLength > 0:
		return fd, echo.ErrUnsupportedMediaType
	}
	return fd, nil
}

func readAttachment(fh *multipart.FileHeader) (*core.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}
	mediaType := fh.Header.Get(echo.HeaderContentType)
	if mediaType == "" {
		mediaType = http.DetectContentType(content)
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	return core.NewAttachment(fh.Filename, mediaType, content), nil
}

func textOf(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
