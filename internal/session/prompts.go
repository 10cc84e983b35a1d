package session

import (
	"fmt"
	"strings"

	"github.com/serenity-health/serenity/internal/models"
)

func therapistPrompt(profile *models.ClinicalProfile) string {
	people := make([]string, 0, len(profile.KeyPeople))
	for _, p := range profile.KeyPeople {
		people = append(people, fmt.Sprintf("%s (%s)", p.Name, p.Relation))
	}

	return fmt.Sprintf(`You are Serenity, an expert AI Psychotherapist.
Your goal is to provide evidence-based support using CBT and DBT techniques.

PATIENT CONTEXT:
Name: %s
Diagnoses: %s
Key People: %s

CORE GUIDELINES:
1. Empathy: Be warm, validating, and non-judgmental.
2. Structure: Keep the session focused.
3. Safety: If you detect self-harm, prioritize safety planning.
4. Memory: Refer to previous context if available.

When responding, keep it concise (under 150 words) unless explaining a complex concept.`,
		profile.Name,
		strings.Join(profile.Diagnosis, ", "),
		strings.Join(people, ", "))
}

func soapNotePrompt(transcript string) string {
	return fmt.Sprintf(`Generate a clinical SOAP note (JSON format) for this therapy session transcript.

Transcript:
%s

Return JSON with keys: subjective, objective, assessment, plan, summary, type (Initial/Follow-up/Crisis).`, transcript)
}

func profileUpdatePrompt(currentProfile, transcript string) string {
	return fmt.Sprintf(`Analyze this recent conversation and update the clinical profile JSON.
Only add NEW information. Do not remove existing valid data.

Current Profile: %s

Recent Conversation:
%s

Return the fully updated clinical profile JSON object.`, currentProfile, transcript)
}

func briefingPrompt(upcoming int, profile *models.ClinicalProfile) string {
	return fmt.Sprintf(`You are an AI assistant for a therapist.
Generate a short, 2-sentence morning status update for the dashboard.

Context:
- Agent Status: Just woke up
- Upcoming Appointments: %d
- Primary Patient: %s (Diagnosis: %s)`,
		upcoming, profile.Name, strings.Join(profile.Diagnosis, ", "))
}

// formatTranscript renders messages as role-labeled lines, oldest first.
func formatTranscript(messages []*models.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(string(m.Role)), m.Content))
	}
	return strings.Join(lines, "\n")
}
