package config

import (
	"github.com/gotify/configor"
	"github.com/joho/godotenv"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr    string `default:"" env:"APP_HOST"`
		Port          int    `default:"8080"  env:"APP_PORT"`
		BodyLimitInMB int    `default:"100" env:"APP_BODY_LIMIT_MB"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"mock-interview" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	S3 struct {
		Endpoint          string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID       string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey   string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName        string `default:"mock-interview" env:"S3_BUCKET_NAME"`
		UseSSL            *bool  `default:"false" env:"S3_USE_SSL"`
		AudioURLTTLInSec  int    `default:"600" env:"S3_AUDIO_URL_TTL_IN_SEC"`
		AudioTTLInMin     int    `default:"60" env:"S3_AUDIO_TTL_IN_MIN"`
		ReportURLTTLInSec int    `default:"86400" env:"S3_REPORT_URL_TTL_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		EmailFrom  string `default:"" env:"SMTP_EMAIL_FROM"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
	}
	Speech struct {
		SttURL       string `default:"" env:"SPEECH_STT_URL"`
		TtsURL       string `default:"" env:"SPEECH_TTS_URL"`
		APIKey       string `default:"" env:"SPEECH_API_KEY"`
		Voice        string `default:"alena" env:"SPEECH_VOICE"`
		TimeoutInSec int    `default:"60" env:"SPEECH_TIMEOUT_IN_SEC"`
	}
	Interview struct {
		QuestionCount   int `default:"5" env:"INTERVIEW_QUESTION_COUNT"`
		SessionTTLInMin int `default:"120" env:"INTERVIEW_SESSION_TTL_IN_MIN"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env для локального запуска, в проде переменные окружения
	_ = godotenv.Load()
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
