package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/park285/weather-assistant-go/internal/domain/suggestion"
	"github.com/park285/weather-assistant-go/internal/handler/shared"
	"github.com/park285/weather-assistant-go/internal/httperror"
	"github.com/park285/weather-assistant-go/internal/usecase/generate"
)

// GenerateRequest 는 제안 생성 요청 본문이다.
// weather 는 "temp": "18" 같은 느슨한 입력을 허용하기 위해 map 으로 받는다.
type GenerateRequest struct {
	Category string         `json:"category"`
	UserText string         `json:"user_text" binding:"required"`
	Weather  map[string]any `json:"weather" binding:"required"`
}

// CategoryResponse 는 카테고리 목록 항목이다.
type CategoryResponse struct {
	ID    string           `json:"id"`
	Label suggestion.Label `json:"label"`
}

// SuggestionHandler 는 카테고리 제안 API 핸들러다.
type SuggestionHandler struct {
	service SuggestionGenerator
	logger  *slog.Logger
}

// NewSuggestionHandler 는 제안 핸들러를 생성한다.
func NewSuggestionHandler(service SuggestionGenerator, logger *slog.Logger) *SuggestionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestionHandler{service: service, logger: logger}
}

// RegisterRoutes 는 제안 라우트를 등록한다.
func (h *SuggestionHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/api")
	group.POST("/generate", h.handleGenerate)
	group.GET("/categories", h.handleCategories)
}

func (h *SuggestionHandler) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if !bindJSON(c, &req) {
		return
	}

	// temp 는 null 이어도 되지만 키 자체는 있어야 한다.
	if _, ok := req.Weather["temp"]; !ok {
		writeError(c, httperror.NewMissingField("weather.temp"))
		return
	}

	var weather suggestion.WeatherFacts
	if err := shared.Decode(req.Weather, &weather); err != nil {
		writeError(c, httperror.NewInvalidInput("invalid weather: "+err.Error()))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), generate.Request{
		Category: suggestion.ParseCategory(req.Category),
		UserText: req.UserText,
		Weather:  weather,
	})
	if err != nil {
		shared.LogError(h.logger, "generate", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SuggestionHandler) handleCategories(c *gin.Context) {
	all := suggestion.All()
	items := make([]CategoryResponse, 0, len(all))
	for _, category := range all {
		items = append(items, CategoryResponse{ID: category.String(), Label: category.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}
