package audiostorage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"mock-interview-backend/config"
	s3client "mock-interview-backend/s3"
)

// Provider - транзитное хранилище аудио ответов.
// Файл загружается только чтобы сервис транскрибации мог забрать его по ссылке,
// после обработки удаляется.
type Provider interface {
	Upload(ctx context.Context, objectName string, data []byte) (objectURL string, err error)
	UploadReport(ctx context.Context, objectName string, data []byte) error
	GetReportURL(ctx context.Context, objectName string) (objectURL string, err error)
	Delete(ctx context.Context, objectName string) error
	ListAudioOlderThan(ctx context.Context, age time.Duration) (objectNames []string, err error)
}

var Instance Provider

const (
	audioPrefix  = "audio/"
	reportPrefix = "reports/"
)

func NewHandler() {
	Instance = &impl{
		s3client: s3client.Client,
	}
}

type impl struct {
	s3client *minio.Client
}

// AudioObjectName строит имя без коллизий между сессиями
func AudioObjectName(interviewID string, questionNumber int) string {
	return fmt.Sprintf("%v%v-%v-%v.webm", audioPrefix, interviewID, questionNumber, time.Now().UnixNano())
}

func ReportObjectName(interviewID string) string {
	return fmt.Sprintf("%v%v.xlsx", reportPrefix, interviewID)
}

func (i impl) Upload(ctx context.Context, objectName string, data []byte) (string, error) {
	bucketName := config.Conf.S3.BucketName
	_, err := i.s3client.PutObject(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "audio/webm"})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки аудио в S3")
	}
	ttl := time.Second * time.Duration(config.Conf.S3.AudioURLTTLInSec)
	objectURL, err := i.s3client.PresignedGetObject(ctx, bucketName, objectName, ttl, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения ссылки на аудио")
	}
	return objectURL.String(), nil
}

func (i impl) UploadReport(ctx context.Context, objectName string, data []byte) error {
	bucketName := config.Conf.S3.BucketName
	_, err := i.s3client.PutObject(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"})
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки отчета в S3")
	}
	return nil
}

func (i impl) GetReportURL(ctx context.Context, objectName string) (string, error) {
	ttl := time.Second * time.Duration(config.Conf.S3.ReportURLTTLInSec)
	objectURL, err := i.s3client.PresignedGetObject(ctx, config.Conf.S3.BucketName, objectName, ttl, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения ссылки на отчет")
	}
	return objectURL.String(), nil
}

func (i impl) Delete(ctx context.Context, objectName string) error {
	err := i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления объекта из S3")
	}
	return nil
}

func (i impl) ListAudioOlderThan(ctx context.Context, age time.Duration) ([]string, error) {
	deadline := time.Now().Add(-age)
	names := []string{}
	objectCh := i.s3client.ListObjects(ctx, config.Conf.S3.BucketName, minio.ListObjectsOptions{
		Prefix:    audioPrefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, errors.Wrap(object.Err, "ошибка получения списка объектов из S3")
		}
		if object.LastModified.Before(deadline) {
			names = append(names, object.Key)
		}
	}
	return names, nil
}
