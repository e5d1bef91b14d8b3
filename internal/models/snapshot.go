package models

import "github.com/google/uuid"

// Wizard step names persisted in AppStateSnapshot.Step.
const (
	StepChat       = "chat"
	StepMood       = "mood"
	StepStoryboard = "storyboard"
	StepCompose    = "compose"
	StepDone       = "done"
)

// AppStateSnapshot is the serializable wizard state saved to the
// project store so a session can resume after a reload.
type AppStateSnapshot struct {
	Step               string        `json:"step"`
	Brief              CreativeBrief `json:"brief"`
	Moods              []Mood        `json:"moods,omitempty"`
	SelectedMoodID     string        `json:"selected_mood_id,omitempty"`
	StoryboardID       uuid.UUID     `json:"storyboard_id,omitempty"`
	StoryboardComplete bool          `json:"storyboard_complete"`
	AudioURL           string        `json:"audio_url,omitempty"`
	CompositionJobID   string        `json:"composition_job_id,omitempty"`
	FinalVideoURL      string        `json:"final_video_url,omitempty"`
}

// MarkStoryboardComplete records that every scene has a finished clip.
func (s *AppStateSnapshot) MarkStoryboardComplete() {
	s.StoryboardComplete = true
}

// RecordComposition advances the wizard to the compose step once a
// composition job has been accepted. Compose requires every scene to be
// ready, so the storyboard-complete flag is implied.
func (s *AppStateSnapshot) RecordComposition(audioURL, jobID string) {
	s.Step = StepCompose
	s.StoryboardComplete = true
	s.AudioURL = audioURL
	s.CompositionJobID = jobID
}

// RecordFinalVideo closes out the wizard with the composed video.
func (s *AppStateSnapshot) RecordFinalVideo(url string) {
	s.Step = StepDone
	s.FinalVideoURL = url
}
