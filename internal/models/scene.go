package models

import (
	"time"

	"github.com/google/uuid"
)

// SceneState describes how far a scene has progressed through the
// text -> image -> video pipeline.
type SceneState string

const (
	SceneStateText  SceneState = "text"
	SceneStateImage SceneState = "image"
	SceneStateVideo SceneState = "video"
)

// GenStatus is the per-medium async job state reported by the backend.
type GenStatus string

const (
	StatusPending    GenStatus = "pending"
	StatusGenerating GenStatus = "generating"
	StatusComplete   GenStatus = "complete"
	StatusError      GenStatus = "error"
)

// Scene duration bounds in seconds.
const (
	DefaultSceneDuration = 5
	MinSceneDuration     = 1
	MaxSceneDuration     = 10
)

// GenerationStatus tracks image and video generation independently.
// An error in either medium does not change the scene's State tag.
type GenerationStatus struct {
	Image GenStatus `json:"image"`
	Video GenStatus `json:"video"`
}

type Scene struct {
	ID            uuid.UUID        `json:"id"`
	StoryboardID  uuid.UUID        `json:"storyboard_id"`
	State         SceneState       `json:"state"`
	Description   string           `json:"description"`
	StylePrompt   string           `json:"style_prompt,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	SeedImageURLs []string         `json:"seed_image_urls,omitempty"`
	VideoURL      string           `json:"video_url,omitempty"`
	Duration      int              `json:"duration"`
	Progress      int              `json:"progress"`
	Generation    GenerationStatus `json:"generation_status"`
	ErrorMessage  string           `json:"error_message,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ReadyForComposition reports whether the scene has a confirmed final
// clip. A scene only counts once the backend marked the video complete.
func (s Scene) ReadyForComposition() bool {
	return s.State == SceneStateVideo && s.Generation.Video == StatusComplete
}

// ScenePatch is the partial-update payload carried by scene_update
// stream events. Only non-nil fields overwrite store state.
type ScenePatch struct {
	SceneID     uuid.UUID   `json:"scene_id"`
	State       *SceneState `json:"state,omitempty"`
	ImageStatus *GenStatus  `json:"image_status,omitempty"`
	VideoStatus *GenStatus  `json:"video_status,omitempty"`
	Progress    *int        `json:"progress_percent,omitempty"`
	ImageURL    *string     `json:"image_url,omitempty"`
	VideoURL    *string     `json:"video_url,omitempty"`
	Error       *string     `json:"error,omitempty"`
}
