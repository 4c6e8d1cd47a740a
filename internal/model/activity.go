package model

const (
	ActivityStatusPlanned   = "planned"
	ActivityStatusOngoing   = "ongoing"
	ActivityStatusCompleted = "completed"
	ActivityStatusCancelled = "cancelled"
)

type Activity struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"max_participants"`
	Status          string `json:"status"`
	CreatedBy       int64  `json:"created_by"`
	Ctime           int64  `json:"ctime"`
	Mtime           int64  `json:"mtime"`
}

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

type Attendance struct {
	ID            int64  `json:"id"`
	ActivityID    int64  `json:"activity_id"`
	ParticipantID int64  `json:"participant_id"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	RecordedBy    int64  `json:"recorded_by"`
	RecordedAt    int64  `json:"recorded_at"`
}
