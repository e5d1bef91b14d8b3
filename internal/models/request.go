package models

type InitStoryboardRequest struct {
	Brief  CreativeBrief `json:"brief"`
	MoodID string        `json:"mood_id"`
	// Optional number of scenes to plan; backend decides when zero.
	SceneCount int `json:"scene_count,omitempty"`
}

// UpdateSceneRequest carries synchronous text/duration edits. Nil
// fields are left untouched by the backend.
type UpdateSceneRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	StylePrompt *string `json:"style_prompt,omitempty"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,min=1,max=10"`
}

type ComposeRequest struct {
	AudioURL string `json:"audio_url,omitempty" validate:"omitempty,url"`
}
