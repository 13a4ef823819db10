package specification

import "gorm.io/gorm"

// BySessionId filters rows belonging to one agent session.
type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// ByReportId filters render jobs for a specific report.
type ByReportId struct {
	ReportId string
}

func (s ByReportId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("report_id = ?", s.ReportId)
}

// ByStatus filters render jobs by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
