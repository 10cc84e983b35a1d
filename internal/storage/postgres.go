package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/serenity-health/serenity/internal/models"
	"go.uber.org/zap"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) EnsureUser(ctx context.Context, userID string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking profile existence: %v", err)
	}
	if !exists {
		if err := s.SaveProfile(ctx, userID, models.DefaultProfile()); err != nil {
			return err
		}
	}

	var messageCount int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE user_id = $1`, userID).Scan(&messageCount)
	if err != nil {
		return fmt.Errorf("error counting messages: %v", err)
	}
	if messageCount == 0 {
		if err := s.AddMessage(ctx, models.WelcomeMessage(userID)); err != nil {
			return err
		}
	}

	var appointmentCount int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments WHERE user_id = $1`, userID).Scan(&appointmentCount)
	if err != nil {
		return fmt.Errorf("error counting appointments: %v", err)
	}
	if appointmentCount == 0 {
		for _, appt := range models.DefaultAppointments(userID) {
			if err := s.addAppointment(ctx, appt); err != nil {
				return err
			}
		}
		s.logger.Info("Seeded default data for user", zap.String("user_id", userID))
	}

	return nil
}

func (s *PostgresStorage) GetProfile(ctx context.Context, userID string) (*models.ClinicalProfile, error) {
	query := `
		SELECT name, age, diagnosis, medications, key_people, last_assessment
		FROM profiles
		WHERE user_id = $1`

	profile := &models.ClinicalProfile{}
	var keyPeople, lastAssessment []byte
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.Name,
		&profile.Age,
		pq.Array(&profile.Diagnosis),
		pq.Array(&profile.Medications),
		&keyPeople,
		&lastAssessment,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying profile: %v", err)
	}

	if err := json.Unmarshal(keyPeople, &profile.KeyPeople); err != nil {
		return nil, fmt.Errorf("error decoding key people: %v", err)
	}
	if err := json.Unmarshal(lastAssessment, &profile.LastAssessment); err != nil {
		return nil, fmt.Errorf("error decoding last assessment: %v", err)
	}

	return profile, nil
}

func (s *PostgresStorage) SaveProfile(ctx context.Context, userID string, profile *models.ClinicalProfile) error {
	keyPeople, err := json.Marshal(profile.KeyPeople)
	if err != nil {
		return fmt.Errorf("error encoding key people: %v", err)
	}
	lastAssessment, err := json.Marshal(profile.LastAssessment)
	if err != nil {
		return fmt.Errorf("error encoding last assessment: %v", err)
	}

	query := `
		INSERT INTO profiles (user_id, name, age, diagnosis, medications, key_people, last_assessment, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET name = $2, age = $3, diagnosis = $4, medications = $5,
		    key_people = $6, last_assessment = $7, updated_at = NOW()`

	_, err = s.db.ExecContext(ctx, query,
		userID,
		profile.Name,
		profile.Age,
		pq.Array(profile.Diagnosis),
		pq.Array(profile.Medications),
		keyPeople,
		lastAssessment,
	)
	if err != nil {
		return fmt.Errorf("error saving profile: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetMessages(ctx context.Context, userID string) ([]*models.Message, error) {
	query := `
		SELECT id, user_id, role, content, is_crisis, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %v", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Role,
			&msg.Content,
			&msg.IsCrisis,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %v", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (s *PostgresStorage) AddMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, user_id, role, content, is_crisis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID,
		msg.UserID,
		msg.Role,
		msg.Content,
		msg.IsCrisis,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error adding message: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetNotes(ctx context.Context, userID string) ([]*models.ClinicalNote, error) {
	query := `
		SELECT id, user_id, session_date, type, subjective, objective, assessment, plan, summary
		FROM notes
		WHERE user_id = $1
		ORDER BY session_date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %v", err)
	}
	defer rows.Close()

	var notes []*models.ClinicalNote
	for rows.Next() {
		note := &models.ClinicalNote{}
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.SessionDate,
			&note.Type,
			&note.Subjective,
			&note.Objective,
			&note.Assessment,
			&note.Plan,
			&note.Summary,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %v", err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

func (s *PostgresStorage) AddNote(ctx context.Context, note *models.ClinicalNote) error {
	query := `
		INSERT INTO notes (id, user_id, session_date, type, subjective, objective, assessment, plan, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		note.ID,
		note.UserID,
		note.SessionDate,
		note.Type,
		note.Subjective,
		note.Objective,
		note.Assessment,
		note.Plan,
		note.Summary,
	)
	if err != nil {
		return fmt.Errorf("error adding note: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetAppointments(ctx context.Context, userID string) ([]*models.Appointment, error) {
	query := `
		SELECT id, user_id, scheduled_time, status, platform, created_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY scheduled_time ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %v", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		appt := &models.Appointment{}
		err := rows.Scan(
			&appt.ID,
			&appt.UserID,
			&appt.ScheduledTime,
			&appt.Status,
			&appt.Platform,
			&appt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment: %v", err)
		}
		appointments = append(appointments, appt)
	}

	return appointments, rows.Err()
}

func (s *PostgresStorage) addAppointment(ctx context.Context, appt *models.Appointment) error {
	query := `
		INSERT INTO appointments (id, user_id, scheduled_time, status, platform, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		appt.ID,
		appt.UserID,
		appt.ScheduledTime,
		appt.Status,
		appt.Platform,
		appt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error adding appointment: %v", err)
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
