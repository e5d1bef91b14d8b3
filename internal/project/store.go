package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"storyreel-client/internal/models"
)

var ErrNotFound = errors.New("project not found")

// Record is one persisted project: the wizard snapshot plus metadata.
type Record struct {
	ID        uuid.UUID               `json:"id"`
	UserID    uuid.UUID               `json:"user_id"`
	Name      string                  `json:"name"`
	Snapshot  models.AppStateSnapshot `json:"snapshot"`
	CreatedAt time.Time               `json:"created_at,omitempty"`
	UpdatedAt time.Time               `json:"updated_at,omitempty"`
}

// Store persists project records in a Supabase table over PostgREST.
// It is the opaque project-metadata collaborator: the client saves an
// AppStateSnapshot here so a session can resume after a reload.
type Store struct {
	client *supabase.Client
	table  string
}

func NewStore(supabaseURL, publishableKey, table string) (*Store, error) {
	client, err := supabase.NewClient(supabaseURL, publishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Store{client: client, table: table}, nil
}

// Save upserts the record and returns the stored row.
func (s *Store) Save(record Record) (*Record, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.UpdatedAt = time.Now().UTC()

	data, _, err := s.client.From(s.table).
		Insert(record, true, "id", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	var rows []Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode saved project: %w", err)
	}
	if len(rows) == 0 {
		return &record, nil
	}
	return &rows[0], nil
}

// Get loads one project owned by the user.
func (s *Store) Get(projectID, userID uuid.UUID) (*Record, error) {
	data, _, err := s.client.From(s.table).
		Select("*", "", false).
		Eq("id", projectID.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var rows []Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, projectID)
	}
	return &rows[0], nil
}

// List returns the user's projects, newest first.
func (s *Store) List(userID uuid.UUID) ([]Record, error) {
	data, _, err := s.client.From(s.table).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("updated_at", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var rows []Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return rows, nil
}

// Delete removes one project owned by the user.
func (s *Store) Delete(projectID, userID uuid.UUID) error {
	_, _, err := s.client.From(s.table).
		Delete("", "").
		Eq("id", projectID.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
