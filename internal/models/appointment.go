package models

import "time"

type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "UPCOMING"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentPending   AppointmentStatus = "PENDING"
)

type Platform string

const (
	PlatformTelegram Platform = "Telegram"
	PlatformVoice    Platform = "Voice"
	PlatformWeb      Platform = "Web"
)

// Appointment has an independent lifecycle; the session pipeline never
// touches it.
type Appointment struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	Status        AppointmentStatus `json:"status"`
	Platform      Platform          `json:"platform"`
	CreatedAt     time.Time         `json:"created_at"`
}
