package dbmodels

import filesapimodels "recruit-flow-backend/models/api/files"

type FileStorage struct {
	BaseModel
	Name        string
	CandidateID string `gorm:"type:varchar(36);index"`
	Type        FileType
	ContentType string
}

func (f FileStorage) ToModel() filesapimodels.FileView {
	return filesapimodels.FileView{
		ID:          f.ID,
		Name:        f.Name,
		CandidateID: f.CandidateID,
		ContentType: f.ContentType,
	}
}

type FileType string

const (
	CandidateResume FileType = "candidate_resume"
	CandidateDoc    FileType = "candidate_doc"
	CandidatePhoto  FileType = "candidate_photo"
)

type UploadFileInfo struct {
	CandidateID    string
	FileName       string
	FileType       FileType
	ContentType    string
	IsUniqueByName bool
}
