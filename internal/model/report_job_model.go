package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportJob struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string    `gorm:"type:text;not null;index"`
	ReportId  string    `gorm:"type:text;not null;index"`
	Status    string    `gorm:"type:text;not null"`
	PdfUrl    string    `gorm:"type:text"`
	LastError string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ReportJob) TableName() string {
	return "report_jobs"
}
