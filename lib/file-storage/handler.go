package filestorage

import (
	"bytes"
	"context"
	"io"

	"recruit-flow-backend/config"
	"recruit-flow-backend/db"
	filesdbstorage "recruit-flow-backend/lib/file-storage/store"
	filesapimodels "recruit-flow-backend/models/api/files"
	dbmodels "recruit-flow-backend/models/db"
	s3client "recruit-flow-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	UploadResume(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error
	UploadDoc(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error
	GetFile(ctx context.Context, fileID string) ([]byte, *filesapimodels.FileView, error)
	GetResume(ctx context.Context, candidateID string) ([]byte, *filesapimodels.FileView, error)
	GetDocList(ctx context.Context, candidateID string) ([]filesapimodels.FileView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	store filesdbstorage.Provider
}

func (i impl) UploadResume(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error {
	return i.upload(ctx, candidateID, file, fileName, contentType, dbmodels.CandidateResume)
}

func (i impl) UploadDoc(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error {
	return i.upload(ctx, candidateID, file, fileName, contentType, dbmodels.CandidateDoc)
}

func (i impl) upload(ctx context.Context, candidateID string, file []byte, fileName, contentType string, fileType dbmodels.FileType) error {
	if s3client.Client == nil {
		return errors.New("file storage is not configured")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	rec := dbmodels.FileStorage{
		Name:        fileName,
		CandidateID: candidateID,
		Type:        fileType,
		ContentType: contentType,
	}
	id, err := i.store.SaveFile(rec)
	if err != nil {
		return errors.Wrap(err, "failed to save file meta")
	}
	_, err = s3client.Client.PutObject(ctx, config.Conf.S3.BucketName, id,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to upload file")
	}
	return nil
}

func (i impl) GetFile(ctx context.Context, fileID string) ([]byte, *filesapimodels.FileView, error) {
	rec, err := i.store.GetFile(fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("file not found")
	}
	body, err := i.download(ctx, rec.ID)
	if err != nil {
		return nil, nil, err
	}
	view := rec.ToModel()
	return body, &view, nil
}

func (i impl) GetResume(ctx context.Context, candidateID string) ([]byte, *filesapimodels.FileView, error) {
	id, err := i.store.GetFileIDByType(candidateID, dbmodels.CandidateResume)
	if err != nil {
		return nil, nil, err
	}
	if id == "" {
		return nil, nil, errors.New("resume not found")
	}
	return i.GetFile(ctx, id)
}

func (i impl) GetDocList(ctx context.Context, candidateID string) ([]filesapimodels.FileView, error) {
	list, err := i.store.GetFileListByType(candidateID, dbmodels.CandidateDoc)
	if err != nil {
		return nil, err
	}
	result := make([]filesapimodels.FileView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) download(ctx context.Context, objectID string) ([]byte, error) {
	if s3client.Client == nil {
		return nil, errors.New("file storage is not configured")
	}
	obj, err := s3client.Client.GetObject(ctx, config.Conf.S3.BucketName, objectID, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get file")
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	return body, nil
}
