package speechapimodels

// TranscribeRequest - запрос к STT сервису, аудио передается по ссылке
type TranscribeRequest struct {
	AudioURL string `json:"audio_url"`
}

type TranscribeResponse struct {
	Text string `json:"text"`
}

// SynthesizeRequest - запрос к TTS сервису
type SynthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

type SynthesizeResponse struct {
	AudioContent string `json:"audioContent"` // base64
}
