package models

// StoryboardSnapshot is the full authoritative state returned by
// storyboard init and recovery fetches.
type StoryboardSnapshot struct {
	Storyboard Storyboard `json:"storyboard"`
	Scenes     []Scene    `json:"scenes"`
}

// GenerateResponse acknowledges an async generation job. It carries no
// result; completion arrives over the event stream.
type GenerateResponse struct {
	SceneID string `json:"scene_id"`
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
}

type ComposeResponse struct {
	StoryboardID string `json:"storyboard_id"`
	JobID        string `json:"job_id"`
	Status       string `json:"status"`
	// Set when the backend composed synchronously instead of queueing.
	FinalVideoURL string `json:"final_video_url,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
