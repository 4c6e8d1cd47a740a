package model

const (
	ParticipantStatusActive    = "active"
	ParticipantStatusInactive  = "inactive"
	ParticipantStatusSuspended = "suspended"
)

type Participant struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Age              int    `json:"age"`
	JoinDate         string `json:"join_date"`
	Status           string `json:"status"`
	Role             string `json:"role"`
	Notes            string `json:"notes"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	MedicalInfo      string `json:"medical_info,omitempty"`
	CreatedBy        int64  `json:"created_by"`
	Ctime            int64  `json:"ctime"`
	Mtime            int64  `json:"mtime"`
}
