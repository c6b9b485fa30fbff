package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func BadGateway(c *gin.Context, code, message string) {
	Write(c, http.StatusBadGateway, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Validation reports per-field errors caught before any network call.
func Validation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "validation_error",
		Message: "Revisa los campos marcados.",
		Fields:  fields,
	})
}

// UpstreamFailure is implemented by errors coming back from the agenda
// backend (see backend.Error).
type UpstreamFailure interface {
	error
	Message() string
}

// Upstream writes a failed backend call. Client errors keep the backend
// status and its raw message; anything else becomes a 502.
func Upstream(c *gin.Context, err error) {
	var uf UpstreamFailure
	if errors.As(err, &uf) {
		Write(c, UpstreamStatus(err), "upstream_error", uf.Message())
		return
	}
	BadGateway(c, "upstream_unavailable", "No fue posible contactar el servicio de agenda.")
}

// UpstreamStatus is the status Upstream would answer with.
func UpstreamStatus(err error) int {
	if s, ok := statusOf(err); ok && s >= 400 && s < 500 {
		return s
	}
	return http.StatusBadGateway
}

// FromError maps business errors to their status code and everything else
// to Upstream.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "flow_not_found", "not_found":
			NotFound(c, be.Code, be.Error())
		case "invalid_state", "invalid_transition", "already_submitting", "already_submitted":
			Conflict(c, be.Code, be.Error())
		default:
			BadRequest(c, be.Code, be.Error())
		}
		return
	}
	Upstream(c, err)
}

type statusCoder interface {
	StatusCode() int
}

func statusOf(err error) (int, bool) {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return 0, false
}
