package shared

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DecoderConfig: mapstructure 디코더의 기본 설정입니다.
// 문자열 숫자("18")는 숫자로, 포인터 필드의 빈 문자열은 nil 로 해석합니다.
func DecoderConfig(result any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       emptyStringToNilHook,
	}
}

// Decode: map[string]any를 Go struct로 디코딩합니다.
// 타입 변환 실패 시 에러를 반환하며, 런타임 패닉을 방지합니다.
func Decode(input map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(DecoderConfig(result))
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func emptyStringToNilHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Ptr {
		return data, nil
	}
	if text, ok := data.(string); ok && text == "" {
		return nil, nil
	}
	return data, nil
}
