package models

import (
	"time"

	"github.com/google/uuid"
)

// Seed templates returned for a freshly initialized user. The store writes
// these exactly once per user; after that reads return genuinely stored data.

func DefaultProfile() *ClinicalProfile {
	return &ClinicalProfile{
		Name:        "Alex Thompson",
		Age:         32,
		Diagnosis:   []string{"Generalized Anxiety Disorder (GAD)", "Mild Depression"},
		Medications: []string{"Sertraline 50mg"},
		KeyPeople: []KeyPerson{
			{Name: "Elena", Relation: "Wife", Dynamic: "Supportive but strained"},
			{Name: "Robert", Relation: "Father", Dynamic: "Distant"},
		},
		LastAssessment: Assessment{
			Type:  "GAD-7",
			Score: 12,
			Date:  "2023-10-25",
			Trend: "improving",
		},
	}
}

func WelcomeMessage(userID string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      RoleModel,
		Content:   "Good morning, Alex. I've reviewed your chart. How have you been handling the anxiety triggers we discussed last session regarding your upcoming work presentation?",
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
}

func DefaultAppointments(userID string) []*Appointment {
	day := time.Now().Truncate(24 * time.Hour)
	at := func(hour, min int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}
	return []*Appointment{
		{ID: uuid.New().String(), UserID: userID, ScheduledTime: at(9, 0), Status: AppointmentUpcoming, Platform: PlatformTelegram, CreatedAt: time.Now()},
		{ID: uuid.New().String(), UserID: userID, ScheduledTime: at(11, 30), Status: AppointmentUpcoming, Platform: PlatformWeb, CreatedAt: time.Now()},
		{ID: uuid.New().String(), UserID: userID, ScheduledTime: at(14, 0), Status: AppointmentPending, Platform: PlatformVoice, CreatedAt: time.Now()},
	}
}
