package echoapi

import (
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/attendance"
	"github.com/trezcool/studysphere/core/class"
	"github.com/trezcool/studysphere/core/course"
	"github.com/trezcool/studysphere/core/enrollment"
	"github.com/trezcool/studysphere/core/grade"
	"github.com/trezcool/studysphere/core/progress"
	"github.com/trezcool/studysphere/core/student"
	"github.com/trezcool/studysphere/core/teacher"
	"github.com/trezcool/studysphere/core/user"
)

var (
	errHTTPUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHTTPForbidden    = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHTTPNotFound     = echo.NewHTTPError(http.StatusNotFound, "not found")

	notFoundErrs = []error{
		user.ErrNotFound, student.ErrNotFound, student.ErrProfileNotFound, teacher.ErrNotFound,
		course.ErrNotFound, class.ErrNotFound, enrollment.ErrNotFound, grade.ErrNotFound,
		attendance.ErrNotFound, progress.ErrNotFound,
	}
)

// errorResponse is the body of every error response.
type errorResponse struct {
	Error   string            `json:"error"`
	Message interface{}       `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func newErrorResponse(code int, msg interface{}, details ...map[string]string) errorResponse {
	res := errorResponse{Error: http.StatusText(code), Message: msg}
	if len(details) > 0 {
		res.Details = details[0]
	}
	return res
}

// resolveError maps err to its HTTP status and response body. Unknown errors are 500s.
func resolveError(err error, translator ut.Translator) (int, errorResponse) {
	cause := pkgerrors.Cause(err)

	var (
		httpErr   *echo.HTTPError
		valErrs   validator.ValidationErrors
		valErr    *core.ValidationError
		constrErr *core.ConstraintError
	)
	switch {
	case errors.As(cause, &httpErr):
		if httpErr == middleware.ErrJWTMissing {
			return http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, httpErr.Message)
		}
		if herr, ok := httpErr.Internal.(*echo.HTTPError); ok {
			httpErr = herr
		}
		return httpErr.Code, newErrorResponse(httpErr.Code, httpErr.Message)

	case errors.As(cause, &valErrs):
		details := make(map[string]string, len(valErrs))
		for _, vErr := range valErrs {
			details[vErr.Field()] = vErr.Translate(translator)
		}
		return http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid input", details)

	case errors.As(cause, &valErr):
		var details map[string]string
		if valErr.Fields != nil {
			details = make(map[string]string, len(valErr.Fields))
			for _, fErr := range valErr.Fields {
				details[fErr.Field] = fErr.Error
			}
		}
		return http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, valErr.Error(), details)

	case errors.As(cause, &constrErr):
		if constrErr.Kind == core.ForeignKeyConstraint && !constrErr.Delete {
			return http.StatusNotFound, newErrorResponse(http.StatusNotFound, constrErr.Error())
		}
		var details map[string]string
		if constrErr.Kind == core.UniqueConstraint && constrErr.Field != "" {
			details = map[string]string{constrErr.Field: constrErr.Error()}
		}
		return http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, constrErr.Error(), details)

	case errors.Is(cause, user.ErrTokenExpired):
		return http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "The token has expired")
	case errors.Is(cause, user.ErrInvalidToken):
		return http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "Invalid token")
	case errors.Is(cause, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, cause.Error())
	}

	for _, nfErr := range notFoundErrs {
		if errors.Is(cause, nfErr) {
			return http.StatusNotFound, newErrorResponse(http.StatusNotFound, cause.Error())
		}
	}

	code := http.StatusInternalServerError
	return code, newErrorResponse(code, http.StatusText(code))
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code, res := resolveError(err, translator)

		if code == http.StatusInternalServerError {
			args := []interface{}{pkgerrors.WithMessage(err, "unhandled error")}
			if usr, ok := ctx.Get(ctxUserKey).(user.User); ok {
				args = append(args, usr)
			}
			logger.Error(res.Error, args...)

			if ctx.Echo().Debug {
				res.Message = err.Error()
			}
			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, res)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
