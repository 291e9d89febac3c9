package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/bizno"
	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("bizno_digits", func(fl validator.FieldLevel) bool {
			return len(bizno.Normalize(fl.Field().String())) == bizno.Length
		})
	})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeInvalidLength:
		return http.StatusBadRequest
	case common.CodeChecksumMismatch:
		return http.StatusUnprocessableEntity
	case common.CodeDuplicateApplication, common.CodeInvalidTransition:
		return http.StatusConflict
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "code", "fields"}. Store failures and
// unclassified errors are logged and answered with a generic message.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		log.Error("unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	status := statusFor(appErr.Code)
	message := appErr.Message
	if appErr.Code == common.CodeStoreUnavailable {
		log.Error("store unavailable", "path", c.FullPath(), "error", err)
		message = "service temporarily unavailable"
	}
	body := gin.H{"error": message, "code": appErr.Code}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(status, body)
}

// respondList answers read-only listings. A store outage degrades to an
// empty list; every other error is reported.
func respondList[T any](c *gin.Context, log *slog.Logger, items []T, err error) {
	if err != nil {
		if !common.Is(err, common.CodeStoreUnavailable) {
			respondError(c, log, err)
			return
		}
		log.Warn("listing degraded to empty", "path", c.FullPath(), "error", err)
		items = nil
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// bindJSON binds the body into req and reports failures as validation errors.
func bindJSON(c *gin.Context, log *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, log, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		onlyBizno := true
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
			if fe.Tag() != "bizno_digits" {
				onlyBizno = false
			}
		}
		if onlyBizno {
			return &common.Error{Code: common.CodeInvalidLength, Message: "business number must have 10 digits", Fields: fields}
		}
		return common.NewValidationError("invalid request", fields)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return common.NewError(common.CodeValidation, "invalid JSON format", err)
	}
	return common.NewError(common.CodeValidation, "invalid request body", err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a UUID"
	case "email":
		return "must be an email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "bizno_digits":
		return "must contain 10 digits"
	default:
		return "is invalid"
	}
}

func actorOf(c *gin.Context) session.Actor {
	return session.FromContext(c.Request.Context())
}

// pathID parses a UUID path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, log *slog.Logger, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, log, common.NewValidationError("invalid "+name, map[string]string{name: "must be a UUID"}))
		return uuid.Nil, false
	}
	return id, true
}
