package aiapimodels

// GeneratedQuestions - ответ генератора вопросов.
// LLM может вернуть как голый массив строк, так и объект с полем questions.
type GeneratedQuestions struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Question string `json:"question"`
}
