package gemini

import "context"

// Generator 는 LLM 호출 인터페이스다.
// 테스트에서 mock 구현을 주입할 수 있도록 한다.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// Client가 Generator 인터페이스를 구현하는지 컴파일 타임 확인
var _ Generator = (*Client)(nil)
