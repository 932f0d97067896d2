// Package chat 는 후속 대화의 메시지 모델과 히스토리 렌더링을 정의한다.
package chat

import (
	"strings"

	"github.com/park285/weather-assistant-go/internal/lang"
)

// HistoryLimit 는 프롬프트에 포함하는 최근 턴 수다.
const HistoryLimit = 8

// Role 은 메시지 발화자다.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message 는 대화 한 턴이다. {role, text} 와 {role, text_en, text_jp, timestamp} 두 형식을 모두 받는다.
type Message struct {
	Role      Role   `json:"role"`
	Text      string `json:"text,omitempty"`
	TextEN    string `json:"text_en,omitempty"`
	TextJP    string `json:"text_jp,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// English 는 LLM 에 보내는 영어 본문이다. text_en 이 없으면 text 를 쓴다.
// text 는 번역하지 않으므로 영어라고 가정한다. {role, text} 형식의 일본어 턴은 그대로 전달된다.
func (m Message) English() string {
	if m.TextEN != "" {
		return m.TextEN
	}
	return m.Text
}

// Recent 는 최근 HistoryLimit 개 턴을 반환한다.
func Recent(history []Message) []Message {
	if len(history) <= HistoryLimit {
		return history
	}
	return history[len(history)-HistoryLimit:]
}

// RenderHistory 는 최근 턴을 "ROLE: text" 줄로 이어 붙인다. 본문 줄바꿈은 공백으로 바뀐다.
func RenderHistory(history []Message) string {
	recent := Recent(history)
	lines := make([]string, 0, len(recent))
	for _, message := range recent {
		role := string(message.Role)
		if role == "" {
			role = string(RoleUser)
		}
		text := strings.ReplaceAll(message.English(), "\n", " ")
		lines = append(lines, strings.ToUpper(role)+": "+text)
	}
	return strings.Join(lines, "\n")
}

// NonEnglishTurns 는 최근 턴 중 English() 본문이 일본어인 턴 수다.
func NonEnglishTurns(history []Message) int {
	count := 0
	for _, message := range Recent(history) {
		if lang.IsJapanese(message.English()) {
			count++
		}
	}
	return count
}
