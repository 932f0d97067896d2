package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	chatdomain "github.com/park285/weather-assistant-go/internal/domain/chat"
	"github.com/park285/weather-assistant-go/internal/handler/shared"
	"github.com/park285/weather-assistant-go/internal/httperror"
	"github.com/park285/weather-assistant-go/internal/usecase/chat"
)

// ChatRequest 는 후속 대화 요청 본문이다.
// history 는 배열이 아닌 값을 400 으로 구분하기 위해 any 로 받는다.
type ChatRequest struct {
	History any          `json:"history"`
	Message string       `json:"message" binding:"required"`
	Context *ChatContext `json:"context"`
}

// ChatContext 는 대화 주제와 날씨 맥락이다.
type ChatContext struct {
	Category string         `json:"category"`
	Weather  map[string]any `json:"weather"`
}

// ChatHandler 는 후속 대화 API 핸들러다.
type ChatHandler struct {
	service ChatReplier
	logger  *slog.Logger
}

// NewChatHandler 는 채팅 핸들러를 생성한다.
func NewChatHandler(service ChatReplier, logger *slog.Logger) *ChatHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{service: service, logger: logger}
}

// RegisterRoutes 는 채팅 라우트를 등록한다.
func (h *ChatHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/api/chat", h.handleChat)
}

func (h *ChatHandler) handleChat(c *gin.Context) {
	var req ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	history, err := decodeHistory(req.History)
	if err != nil {
		writeError(c, err)
		return
	}
	// 공백뿐인 메시지는 required 를 통과하므로 따로 막는다.
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, httperror.NewMissingField("message"))
		return
	}

	chatContext := chat.Context{}
	if req.Context != nil {
		chatContext.Category = req.Context.Category
		if err := shared.Decode(req.Context.Weather, &chatContext.Weather); err != nil {
			writeError(c, httperror.NewInvalidInput("invalid context.weather: "+err.Error()))
			return
		}
	}

	result, err := h.service.Reply(c.Request.Context(), chat.Request{
		History: history,
		Message: req.Message,
		Context: chatContext,
	})
	if err != nil {
		shared.LogError(h.logger, "chat", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func decodeHistory(raw any) ([]chatdomain.Message, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, httperror.NewInvalidInput("history must be array")
	}

	history := make([]chatdomain.Message, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, httperror.NewInvalidInput("history items must be objects")
		}
		var message chatdomain.Message
		if err := shared.Decode(fields, &message); err != nil {
			return nil, httperror.NewInvalidInput("invalid history item: " + err.Error())
		}
		history = append(history, message)
	}
	return history, nil
}
