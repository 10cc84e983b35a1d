package storage

import (
	"context"
	"testing"
	"time"

	"github.com/serenity-health/serenity/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserSeedsOnce(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.EnsureUser(ctx, "u1"))

	messages, err := store.GetMessages(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleModel, messages[0].Role)
	welcomeID := messages[0].ID

	profile, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alex Thompson", profile.Name)

	appointments, err := store.GetAppointments(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, appointments, 3)

	// A second pass never reseeds or duplicates.
	require.NoError(t, store.EnsureUser(ctx, "u1"))
	messages, err = store.GetMessages(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, welcomeID, messages[0].ID)
}

func TestEnsureUserKeepsExistingData(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, store.EnsureUser(ctx, "u1"))

	edited := models.DefaultProfile()
	edited.Name = "Sarah Chen"
	require.NoError(t, store.SaveProfile(ctx, "u1", edited))

	require.NoError(t, store.EnsureUser(ctx, "u1"))

	profile, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", profile.Name)
}

func TestMessagesOrderedAscending(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.AddMessage(ctx, &models.Message{ID: "b", UserID: "u1", Role: models.RoleModel, Content: "second", CreatedAt: base}))
	require.NoError(t, store.AddMessage(ctx, &models.Message{ID: "a", UserID: "u1", Role: models.RoleUser, Content: "first", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, store.AddMessage(ctx, &models.Message{ID: "c", UserID: "u1", Role: models.RoleUser, Content: "third", CreatedAt: base.Add(time.Hour)}))

	messages, err := store.GetMessages(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{messages[0].ID, messages[1].ID, messages[2].ID})
}

func TestNotesOrderedNewestFirst(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.AddNote(ctx, &models.ClinicalNote{ID: "old", UserID: "u1", SessionDate: base.Add(-48 * time.Hour), Type: models.NoteInitial}))
	require.NoError(t, store.AddNote(ctx, &models.ClinicalNote{ID: "new", UserID: "u1", SessionDate: base, Type: models.NoteFollowUp}))

	notes, err := store.GetNotes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "new", notes[0].ID)
	assert.Equal(t, "old", notes[1].ID)
}

func TestUsersAreIsolated(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, store.EnsureUser(ctx, "u1"))
	require.NoError(t, store.EnsureUser(ctx, "u2"))

	require.NoError(t, store.AddMessage(ctx, &models.Message{ID: "m", UserID: "u1", Role: models.RoleUser, Content: "mine", CreatedAt: time.Now()}))

	u2, err := store.GetMessages(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, u2, 1) // only the welcome message

	edited := models.DefaultProfile()
	edited.Name = "Mike Ross"
	require.NoError(t, store.SaveProfile(ctx, "u2", edited))

	u1Profile, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alex Thompson", u1Profile.Name)
}

func TestSaveProfileCopies(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	profile := models.DefaultProfile()
	require.NoError(t, store.SaveProfile(ctx, "u1", profile))

	profile.Name = "Mutated"

	stored, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alex Thompson", stored.Name)
}
