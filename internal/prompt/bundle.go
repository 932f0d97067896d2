package prompt

import (
	"fmt"
	"io/fs"
	"strings"
)

// TemplateField 는 프롬프트 YAML 에서 본문 템플릿을 담는 키다.
const TemplateField = "template"

// Bundle: 특정 도메인의 프롬프트 모음을 관리합니다.
type Bundle struct {
	label   string
	prompts map[string]map[string]string
}

// LoadBundle: fs 내 dir 디렉터리의 YAML 프롬프트들을 로드하고 template 필드를 검증합니다.
func LoadBundle(fsys fs.FS, dir string, label string) (*Bundle, error) {
	loaded, err := LoadYAMLDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("load %s prompts: %w", label, err)
	}
	for name, data := range loaded {
		if strings.TrimSpace(data[TemplateField]) == "" {
			return nil, fmt.Errorf("%s prompt %s: missing %s", label, name, TemplateField)
		}
	}
	return &Bundle{label: label, prompts: loaded}, nil
}

// Has: 이름의 프롬프트가 존재하는지 확인합니다.
func (b *Bundle) Has(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.prompts[name]
	return ok
}

// Field: 프롬프트의 임의 필드를 조회합니다.
func (b *Bundle) Field(name string, key string) (string, error) {
	if b == nil {
		return "", fmt.Errorf("prompts not initialized")
	}
	data, ok := b.prompts[name]
	if !ok {
		return "", fmt.Errorf("%s prompt not found: %s", b.label, name)
	}
	value, ok := data[key]
	if !ok {
		return "", fmt.Errorf("%s prompt field missing: %s.%s", b.label, name, key)
	}
	return value, nil
}

// Render: 프롬프트 템플릿을 값으로 치환하고 앞뒤 공백을 제거합니다.
func (b *Bundle) Render(name string, values map[string]string) (string, error) {
	template, err := b.Field(name, TemplateField)
	if err != nil {
		return "", err
	}
	rendered, err := FormatTemplate(template, values)
	if err != nil {
		return "", fmt.Errorf("format %s.%s: %w", b.label, name, err)
	}
	return strings.TrimSpace(rendered), nil
}
