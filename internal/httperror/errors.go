package httperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/park285/weather-assistant-go/internal/gemini"
	"github.com/park285/weather-assistant-go/internal/upstream"
	"github.com/park285/weather-assistant-go/internal/weather"
)

// ErrorCode 는 API 오류 코드다.
type ErrorCode string

const (
	// ErrorCodeInternal 는 내부 오류 코드다.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrorCodeValidation 는 검증 오류 코드다.
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrorCodeInvalidInput 는 입력 오류 코드다.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeMissingField 는 필드 누락 코드다.
	ErrorCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrorCodeConfig 는 자격 증명 미설정 코드다.
	ErrorCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrorCodeUpstream 는 외부 API non-2xx 코드다.
	ErrorCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrorCodeUpstreamTimeout 는 외부 API 타임아웃 코드다.
	ErrorCodeUpstreamTimeout ErrorCode = "UPSTREAM_TIMEOUT"
	// ErrorCodeLLMModel 는 LLM 모델 오류 코드다.
	ErrorCodeLLMModel ErrorCode = "LLM_MODEL_ERROR"
)

// ErrorResponse 는 API 오류 응답 본문이다. error 키는 항상 채워진다.
type ErrorResponse struct {
	Error     string         `json:"error"`
	ErrorCode string         `json:"error_code"`
	ErrorType string         `json:"error_type"`
	RequestID *string        `json:"request_id"`
	Details   map[string]any `json:"details"`
}

// Error 는 내부 표준 오류 타입이다.
type Error struct {
	Code    ErrorCode
	Status  int
	Type    string
	Message string
	Details map[string]any
}

// Error 는 오류 메시지를 반환한다.
func (e *Error) Error() string {
	return e.Message
}

// Response 는 오류를 HTTP 응답으로 변환한다.
func Response(err error, requestID string) (int, ErrorResponse) {
	apiErr := FromError(err)
	if apiErr == nil {
		apiErr = NewInternalError("unknown error")
	}

	var requestIDPtr *string
	if requestID != "" {
		requestIDPtr = &requestID
	}

	return apiErr.Status, ErrorResponse{
		Error:     apiErr.Message,
		ErrorCode: string(apiErr.Code),
		ErrorType: apiErr.Type,
		RequestID: requestIDPtr,
		Details:   apiErr.Details,
	}
}

// FromError 는 오류를 내부 오류 타입으로 변환한다.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, gemini.ErrMissingAPIKey) {
		return NewConfigError(gemini.ErrMissingAPIKey.Error())
	}

	if errors.Is(err, weather.ErrMissingAPIKey) {
		return NewConfigError(weather.ErrMissingAPIKey.Error())
	}

	if errors.Is(err, gemini.ErrInvalidModel) {
		return NewLLMModelError("Invalid model")
	}

	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		return NewUpstreamError(upstreamErr.Message, upstreamErr.Status, upstreamErr.Body)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstreamTimeout("upstream request timed out")
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return NewValidationError(err)
	}

	return NewInternalError(err.Error())
}

// NewInternalError 는 내부 오류를 생성한다.
func NewInternalError(message string) *Error {
	return &Error{
		Code:    ErrorCodeInternal,
		Status:  http.StatusInternalServerError,
		Type:    "InternalError",
		Message: message,
		Details: nil,
	}
}

// NewValidationError 는 검증 오류를 생성한다.
func NewValidationError(err error) *Error {
	return &Error{
		Code:    ErrorCodeValidation,
		Status:  http.StatusBadRequest,
		Type:    "ValidationError",
		Message: "Input validation failed",
		Details: validationDetails(err),
	}
}

// NewMissingField 는 누락 필드 오류를 생성한다.
func NewMissingField(field string) *Error {
	return &Error{
		Code:    ErrorCodeMissingField,
		Status:  http.StatusBadRequest,
		Type:    "MissingFieldError",
		Message: fmt.Sprintf("%s required", field),
		Details: map[string]any{"field": field},
	}
}

// NewInvalidInput 는 입력 오류를 생성한다.
func NewInvalidInput(message string) *Error {
	return &Error{
		Code:    ErrorCodeInvalidInput,
		Status:  http.StatusBadRequest,
		Type:    "InvalidInputError",
		Message: message,
		Details: nil,
	}
}

// NewConfigError 는 자격 증명 미설정 오류를 생성한다. message 는 환경 변수 이름을 포함한다.
func NewConfigError(message string) *Error {
	return &Error{
		Code:    ErrorCodeConfig,
		Status:  http.StatusInternalServerError,
		Type:    "ConfigError",
		Message: message,
		Details: nil,
	}
}

// NewUpstreamError 는 외부 API 의 상태 코드를 그대로 전달하는 오류를 생성한다.
func NewUpstreamError(message string, status int, body string) *Error {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &Error{
		Code:    ErrorCodeUpstream,
		Status:  status,
		Type:    "UpstreamError",
		Message: message,
		Details: map[string]any{"body": body},
	}
}

// NewUpstreamTimeout 는 외부 API 타임아웃 오류를 생성한다.
func NewUpstreamTimeout(message string) *Error {
	return &Error{
		Code:    ErrorCodeUpstreamTimeout,
		Status:  http.StatusGatewayTimeout,
		Type:    "UpstreamTimeoutError",
		Message: message,
		Details: nil,
	}
}

// NewLLMModelError 는 LLM 모델 오류를 생성한다.
func NewLLMModelError(message string) *Error {
	return &Error{
		Code:    ErrorCodeLLMModel,
		Status:  http.StatusInternalServerError,
		Type:    "LLMModelError",
		Message: message,
		Details: nil,
	}
}

// FieldError 는 필드 오류 상세 정보다.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

func validationDetails(err error) map[string]any {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, validationErr := range validationErrors {
			fields = append(fields, FieldError{
				Field:   validationErr.Field(),
				Message: validationErr.Error(),
				Value:   validationErr.Value(),
			})
		}
		return map[string]any{"errors": fields}
	}

	return map[string]any{
		"errors": []FieldError{
			{
				Field:   "body",
				Message: err.Error(),
				Value:   nil,
			},
		},
	}
}
