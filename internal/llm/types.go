package llm

// Usage: 토큰 사용량 정보를 담습니다.
type Usage struct {
	InputTokens     int `json:"input_tokens"`
	OutputTokens    int `json:"output_tokens"`
	TotalTokens     int `json:"total_tokens"`
	ReasoningTokens int `json:"reasoning_tokens"`
}

// Task 는 LLM 호출 용도 라벨이다. 메트릭과 로그에서 호출 지점을 구분한다.
type Task string

const (
	// TaskGenerate 카테고리 제안 생성
	TaskGenerate Task = "generate"
	// TaskChat 후속 대화 응답
	TaskChat Task = "chat"
	// TaskTranslate 번역
	TaskTranslate Task = "translate"
)
