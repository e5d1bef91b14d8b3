package models

import (
	"time"

	"github.com/google/uuid"
)

// CreativeBrief is the distilled chat output the storyboard was built
// from. Immutable once the storyboard exists.
type CreativeBrief struct {
	Concept  string `json:"concept"`
	Tone     string `json:"tone,omitempty"`
	Audience string `json:"audience,omitempty"`
}

type Mood struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Palette  string `json:"palette,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Storyboard is the ordered plan for one video project. Apart from
// SceneOrder and UpdatedAt it never changes after creation.
type Storyboard struct {
	ID         uuid.UUID     `json:"id"`
	SessionID  string        `json:"session_id"`
	UserID     uuid.UUID     `json:"user_id"`
	SceneOrder []uuid.UUID   `json:"scene_order"`
	Brief      CreativeBrief `json:"brief"`
	MoodID     string        `json:"mood_id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
