package model

import "encoding/json"

const (
	ReportTypeBudget   = "budget"
	ReportTypeIssue    = "issue"
	ReportTypeSchedule = "schedule"
)

type Report struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Data        json.RawMessage `json:"data,omitempty"`
	CreatedBy   int64           `json:"created_by"`
	CreatorName string          `json:"creator_name,omitempty"`
	IsActive    bool            `json:"is_active"`
	Ctime       int64           `json:"ctime"`
	Mtime       int64           `json:"mtime"`
}
