package wsmodels

// ServerMessage - событие сессии интервью, отправляемое клиенту
type ServerMessage struct {
	ToUserID       string `json:"-"`
	Time           string `json:"time"`            // время события
	SessionID      string `json:"session_id"`      // идентификатор сессии
	State          string `json:"state"`           // новое состояние сессии
	QuestionNumber int    `json:"question_number"` // номер текущего вопроса
	Msg            string `json:"msg,omitempty"`   // текст события
}
