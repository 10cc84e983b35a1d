package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message represents one turn of a therapy chat. Messages are immutable once
// written; the transcript is their created-at ascending order.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	IsCrisis  bool      `json:"is_crisis,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// KeyPerson is someone significant in the patient's life.
type KeyPerson struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Dynamic  string `json:"dynamic"`
}

// Assessment holds the most recent structured assessment result (GAD-7, PHQ-9).
type Assessment struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
	Date  string `json:"date"`
	Trend string `json:"trend"`
}

// ClinicalProfile represents the patient file. Exactly one exists per user;
// it is replaced wholesale by the end-of-session update or a direct edit.
type ClinicalProfile struct {
	Name           string      `json:"name"`
	Age            int         `json:"age"`
	Diagnosis      []string    `json:"diagnosis"`
	Medications    []string    `json:"medications"`
	KeyPeople      []KeyPerson `json:"keyPeople"`
	LastAssessment Assessment  `json:"lastAssessment"`
}
