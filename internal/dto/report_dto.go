package dto

// ReportJobResponse is the render-job status returned to pollers.
type ReportJobResponse struct {
	JobId     string `json:"job_id"`
	ReportId  string `json:"report_id"`
	SessionId string `json:"session_id"`
	Status    string `json:"status"`
	PdfUrl    string `json:"pdf_url,omitempty"`
	Error     string `json:"error,omitempty"`
}
