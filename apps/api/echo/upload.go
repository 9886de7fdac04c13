package echoapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core"
	mediasvc "github.com/trezcool/studysphere/services/media"
)

type uploadApi struct {
	store  core.MediaStore
	folder string
}

func registerUploadAPI(r *router, deps *Deps) {
	api := uploadApi{store: deps.MediaStore, folder: deps.Conf.Storage.UploadFolder}

	r.add(http.MethodPost, "/upload", authenticated, api.upload)
}

// upload stores the multipart `file` as-is, or resized when both `width` and `height` are given.
func (api *uploadApi) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file part in the request")
	}
	if fh.Filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No selected file")
	}

	width, err := formInt(ctx, "width")
	if err != nil {
		return err
	}
	height, err := formInt(ctx, "height")
	if err != nil {
		return err
	}

	var tooLarge []core.FieldError
	for _, dim := range []struct {
		name  string
		value int
	}{{"width", width}, {"height", height}} {
		if dim.value > mediasvc.MaxDimension {
			tooLarge = append(tooLarge, core.FieldError{Field: dim.name, Error: fmt.Sprintf("must be at most %d", mediasvc.MaxDimension)})
		}
	}
	if len(tooLarge) > 0 {
		return core.NewValidationError(nil, tooLarge...)
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading uploaded file")
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}
	if width > 0 && height > 0 {
		var format string
		data, format, err = mediasvc.ResizeImage(data, width, height)
		if err != nil {
			if errors.Is(err, mediasvc.ErrUnsupportedFormat) || errors.Is(err, mediasvc.ErrImageTooLarge) {
				return core.NewValidationError(err, core.FieldError{Field: "file", Error: err.Error()})
			}
			return errors.Wrap(err, "resizing image")
		}
		contentType = mediasvc.ContentType(format)
	}

	publicID := core.CleanString(ctx.FormValue("public_id"))
	if publicID == "" {
		publicID = uuid.NewString() + filepath.Ext(fh.Filename)
	}

	url, err := api.store.Upload(ctx.Request().Context(), api.folder, publicID, contentType, bytes.NewReader(data))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image: "+err.Error()).SetInternal(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "Image uploaded successfully", "url": url})
}

func formInt(ctx echo.Context, name string) (int, error) {
	val := core.CleanString(ctx.FormValue(name))
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be an integer"})
	}
	return n, nil
}
