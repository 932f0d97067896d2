package shared

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/park285/weather-assistant-go/internal/httperror"
	"github.com/park285/weather-assistant-go/internal/middleware"
)

// MsgInvalidJSON 은 본문 파싱 실패 메시지다.
const MsgInvalidJSON = "invalid JSON body"

// WriteError 는 에러 응답을 작성한다.
func WriteError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	status, payload := httperror.Response(err, middleware.GetRequestID(c))
	c.JSON(status, payload)
}

// BindJSON 는 요청 본문을 JSON으로 파싱한다.
// 파싱 실패는 INVALID_INPUT, required 위반은 MISSING_FIELD("<json 필드> required"),
// 그 밖의 binding 태그 검증 실패는 VALIDATION_ERROR 로 응답한다.
func BindJSON(c *gin.Context, out any) bool {
	if c == nil {
		return false
	}
	if err := c.ShouldBindJSON(out); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			if len(validationErrors) > 0 && validationErrors[0].Tag() == "required" {
				WriteError(c, httperror.NewMissingField(jsonFieldPath(out, validationErrors[0])))
				return false
			}
			WriteError(c, httperror.NewValidationError(err))
			return false
		}
		WriteError(c, httperror.NewInvalidInput(MsgInvalidJSON))
		return false
	}
	return true
}

// jsonFieldPath 는 검증 실패 필드의 StructNamespace 를 json 태그 경로(예: "context.weather")로 바꾼다.
func jsonFieldPath(out any, fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	typ := reflect.TypeOf(out)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		fieldName, index, _ := strings.Cut(part, "[")
		for typ != nil && (typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array) {
			typ = typ.Elem()
		}
		name := fieldName
		if typ != nil && typ.Kind() == reflect.Struct {
			if field, ok := typ.FieldByName(fieldName); ok {
				if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
					name = tag
				}
				typ = field.Type
			} else {
				typ = nil
			}
		}
		if index != "" {
			name += "[" + index
		}
		names = append(names, name)
	}
	return strings.Join(names, ".")
}
