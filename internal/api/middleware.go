package api

import (
	"log"
	"regexp"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeaderKey)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeaderKey, requestID)
		c.Set(RequestIDContextKey, requestID)
		c.Next()
	}
}

func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		level := "[INFO]"
		if status >= 500 {
			level = "[ERROR]"
		} else if status >= 400 {
			level = "[WARN]"
		}
		log.Printf("%s %s %s %d %s request_id=%s", level, c.Request.Method, c.Request.URL.RequestURI(),
			status, time.Since(start).Round(time.Millisecond), c.GetString(RequestIDContextKey))
	}
}

// Ticker symbols: letters and digits with an optional class suffix such as BRK.B.
var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,6}([.-][A-Za-z0-9]{1,3})?$`)

var registerOnce sync.Once

func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
			return symbolRegex.MatchString(fl.Field().String())
		}); err != nil {
			log.Printf("[WARN] register symbol validation: %v", err)
		}
	})
}
