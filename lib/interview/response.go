package interview

import (
	"fmt"
	"strings"
)

// PendingResponse - накопитель еще не отправленного ответа на текущий вопрос.
// После успешной отправки сбрасывается в пустое значение.
type PendingResponse struct {
	AudioClip    []byte
	TextContent  string
	CodeContent  string
	CodeLanguage string
}

// HasContent - ровно этот предикат разрешает отправку ответа
func (r PendingResponse) HasContent() bool {
	return len(r.AudioClip) > 0 ||
		strings.TrimSpace(r.TextContent) != "" ||
		strings.TrimSpace(r.CodeContent) != ""
}

func (r *PendingResponse) Reset() {
	*r = PendingResponse{}
}

// BuildCombinedResponse собирает итоговый текст для оценки.
// Секции идут в фиксированном порядке (речь, текст, код), пустые каналы пропускаются.
func BuildCombinedResponse(transcript, text, code, codeLanguage string) string {
	sections := []string{}
	if strings.TrimSpace(transcript) != "" {
		sections = append(sections, fmt.Sprintf("Speech: %v", strings.TrimSpace(transcript)))
	}
	if strings.TrimSpace(text) != "" {
		sections = append(sections, fmt.Sprintf("Text: %v", strings.TrimSpace(text)))
	}
	if strings.TrimSpace(code) != "" {
		if strings.TrimSpace(codeLanguage) != "" {
			sections = append(sections, fmt.Sprintf("Code (%v):\n%v", strings.TrimSpace(codeLanguage), strings.TrimSpace(code)))
		} else {
			sections = append(sections, fmt.Sprintf("Code:\n%v", strings.TrimSpace(code)))
		}
	}
	return strings.Join(sections, "\n\n")
}
