package llm

// Outcome 은 LLM 파이프라인 단계의 결과다.
// 값은 항상 채워져 있으며, Fallback 이면 모델 출력 대신 대체값이 들어 있다.
type Outcome[T any] struct {
	Value    T
	fallback bool
	reason   string
}

// Ok 는 모델 출력에서 얻은 정상 결과를 만든다.
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

// Fallback 은 대체값 결과를 만든다. reason 은 로그/메트릭 용도다.
func Fallback[T any](value T, reason string) Outcome[T] {
	return Outcome[T]{Value: value, fallback: true, reason: reason}
}

// IsFallback 은 대체값 여부를 반환한다.
func (o Outcome[T]) IsFallback() bool {
	return o.fallback
}

// Reason 은 대체 사유를 반환한다. 정상 결과면 빈 문자열이다.
func (o Outcome[T]) Reason() string {
	return o.reason
}
