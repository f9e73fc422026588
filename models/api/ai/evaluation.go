package aiapimodels

// EvaluationRequest - запрос на оценку пары вопрос/ответ
type EvaluationRequest struct {
	Question        string
	Answer          string
	JobRole         string
	Domain          string
	ExperienceLevel string
}

// Evaluation - структурированный результат оценки от LLM
type Evaluation struct {
	Score            int      `json:"score"` // 0-100
	Feedback         string   `json:"feedback"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	Recommendation   string   `json:"recommendation"`
	PerformanceLevel string   `json:"performance_level"`
}
