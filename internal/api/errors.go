package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CustomError carries the HTTP status to respond with.
type CustomError struct {
	StatusCode int
	Message    string
}

func NewCError(statusCode int, message string) CustomError {
	return CustomError{StatusCode: statusCode, Message: message}
}

func (err CustomError) Error() string {
	return err.Message
}

var ErrRefreshRunning = NewCError(http.StatusConflict, "a refresh is already running")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var rec *model.RecordError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, dashboard.ErrUnknownPeriod):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrMalformedRecord):
		return http.StatusBadGateway
	case errors.As(err, &rec) && rec.Err == model.ErrDataUnavailable:
		// the provider answered with nothing for this symbol
		return http.StatusNotFound
	case errors.Is(err, model.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error writes the first error recorded on the context as a Res envelope.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0].Err

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]ErrorType, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, ErrorType{Field: fe.Field(), Message: fe.Error()})
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, Res{Error: fields})
			return
		}

		var ce CustomError
		if errors.As(err, &ce) {
			c.AbortWithStatusJSON(ce.StatusCode, Res{Error: ce.Error()})
			return
		}

		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[ERROR] %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, c.GetString(RequestIDContextKey), err)
		}
		c.AbortWithStatusJSON(status, Res{Error: err.Error()})
	}
}
