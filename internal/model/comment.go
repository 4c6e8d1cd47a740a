package model

type Comment struct {
	ID         int64  `json:"id"`
	ReportID   int64  `json:"report_id"`
	UserID     int64  `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	ParentID   int64  `json:"parent_id,omitempty"`
	Content    string `json:"content"`
	LikesCount int    `json:"likes_count"`
	IsActive   bool   `json:"is_active"`
	Ctime      int64  `json:"ctime"`
	Mtime      int64  `json:"mtime"`
}

const (
	NotificationTypeComment = "comment"
	NotificationTypeLike    = "like"
	NotificationTypeReport  = "report"
	NotificationTypeSystem  = "system"
)

type Notification struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	RelatedID int64  `json:"related_id,omitempty"`
	IsRead    bool   `json:"is_read"`
	Ctime     int64  `json:"ctime"`
}
