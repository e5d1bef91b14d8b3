package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"storyreel-client/internal/backend"
	"storyreel-client/internal/models"
	"storyreel-client/internal/store"
)

var ErrNotAllReady = errors.New("not every scene has a completed video")

// Facade exposes the imperative scene operations. Generate calls are
// fire-and-await job submissions: REST success flips the local status
// to generating optimistically, completion arrives over the stream.
// A failed REST call surfaces immediately without waiting for events.
type Facade struct {
	client   *backend.Client
	store    *store.Store
	validate *validator.Validate
}

func New(client *backend.Client, st *store.Store) *Facade {
	return &Facade{
		client:   client,
		store:    st,
		validate: validator.New(),
	}
}

// GenerateImage submits async image generation for a scene. A second
// call for the same scene while the first is pending is rejected.
func (f *Facade) GenerateImage(ctx context.Context, sceneID uuid.UUID) error {
	if err := f.store.BeginGeneration(sceneID, store.MediumImage); err != nil {
		return err
	}
	if _, err := f.client.GenerateSceneImage(ctx, sceneID); err != nil {
		f.store.AbortGeneration(sceneID, store.MediumImage)
		return fmt.Errorf("failed to request image generation: %w", err)
	}
	f.store.MarkGenerating(sceneID, store.MediumImage)
	return nil
}

// GenerateVideo submits async video generation for a scene.
func (f *Facade) GenerateVideo(ctx context.Context, sceneID uuid.UUID) error {
	if err := f.store.BeginGeneration(sceneID, store.MediumVideo); err != nil {
		return err
	}
	if _, err := f.client.GenerateSceneVideo(ctx, sceneID); err != nil {
		f.store.AbortGeneration(sceneID, store.MediumVideo)
		return fmt.Errorf("failed to request video generation: %w", err)
	}
	f.store.MarkGenerating(sceneID, store.MediumVideo)
	return nil
}

// UpdateSceneText edits the scene description synchronously.
func (f *Facade) UpdateSceneText(ctx context.Context, sceneID uuid.UUID, text string) error {
	if err := f.validate.Var(text, "required,min=1"); err != nil {
		return &backend.ValidationError{Field: "description", Message: "must not be empty"}
	}
	reqBody := models.UpdateSceneRequest{Description: &text}
	scene, err := f.client.UpdateScene(ctx, sceneID, reqBody)
	if err != nil {
		return fmt.Errorf("failed to update scene text: %w", err)
	}
	f.store.ApplyScene(*scene)
	return nil
}

// UpdateSceneDuration edits the clip duration synchronously. Durations
// run from 1 to 10 seconds.
func (f *Facade) UpdateSceneDuration(ctx context.Context, sceneID uuid.UUID, seconds int) error {
	if err := f.validate.Var(seconds, "min=1,max=10"); err != nil {
		return &backend.ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("must be between %d and %d seconds", models.MinSceneDuration, models.MaxSceneDuration),
		}
	}
	reqBody := models.UpdateSceneRequest{Duration: &seconds}
	scene, err := f.client.UpdateScene(ctx, sceneID, reqBody)
	if err != nil {
		return fmt.Errorf("failed to update scene duration: %w", err)
	}
	f.store.ApplyScene(*scene)
	return nil
}

// ComposeVideo submits the final composition job. Every scene must
// already have a completed clip.
func (f *Facade) ComposeVideo(ctx context.Context, audioURL string) (*models.ComposeResponse, error) {
	storyboard, ok := f.store.Storyboard()
	if !ok {
		return nil, errors.New("no storyboard loaded")
	}
	if !f.store.AllReady() {
		return nil, fmt.Errorf("%w (%d/%d ready)", ErrNotAllReady, f.store.ReadyCount(), f.store.SceneCount())
	}
	reqBody := models.ComposeRequest{AudioURL: audioURL}
	if err := f.validate.Struct(reqBody); err != nil {
		return nil, &backend.ValidationError{Field: "audio_url", Message: "must be a valid URL"}
	}
	resp, err := f.client.ComposeVideo(ctx, storyboard.ID, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to submit composition: %w", err)
	}
	return resp, nil
}
