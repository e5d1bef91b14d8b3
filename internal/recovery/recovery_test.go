package recovery_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyreel-client/internal/models"
	"storyreel-client/internal/recovery"
	"storyreel-client/internal/store"
)

type fakeFetcher struct {
	mu       sync.Mutex
	snapshot models.StoryboardSnapshot
	err      error
	calls    int
}

func (f *fakeFetcher) GetStoryboard(ctx context.Context, storyboardID uuid.UUID) (*models.StoryboardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	snapshot := f.snapshot
	return &snapshot, nil
}

func (f *fakeFetcher) OpenStream(ctx context.Context, storyboardID uuid.UUID) (io.ReadCloser, error) {
	return nil, fmt.Errorf("stream unavailable")
}

func (f *fakeFetcher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func snapshotWithScenes(statuses ...models.GenStatus) models.StoryboardSnapshot {
	storyboardID := uuid.New()
	snapshot := models.StoryboardSnapshot{
		Storyboard: models.Storyboard{ID: storyboardID},
	}
	for _, status := range statuses {
		scene := models.Scene{
			ID:           uuid.New(),
			StoryboardID: storyboardID,
			State:        models.SceneStateText,
			Duration:     models.DefaultSceneDuration,
			Generation:   models.GenerationStatus{Image: status, Video: models.StatusPending},
		}
		snapshot.Scenes = append(snapshot.Scenes, scene)
		snapshot.Storyboard.SceneOrder = append(snapshot.Storyboard.SceneOrder, scene.ID)
	}
	return snapshot
}

func TestRecover_ReplacesStoreState(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: snapshotWithScenes(models.StatusPending)}
	s := store.New(fetcher)
	require.NoError(t, s.LoadStoryboard(context.Background(), fetcher.snapshot.Storyboard.ID))

	// Backend moved on while we were disconnected.
	fetcher.mu.Lock()
	fetcher.snapshot.Scenes[0].Generation.Image = models.StatusComplete
	fetcher.snapshot.Scenes[0].State = models.SceneStateImage
	fetcher.mu.Unlock()

	r := recovery.New(fetcher, s, 30*time.Second)
	require.NoError(t, r.Recover(context.Background(), fetcher.snapshot.Storyboard.ID))

	scene, ok := s.Scene(fetcher.snapshot.Scenes[0].ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusComplete, scene.Generation.Image)
	assert.Equal(t, models.SceneStateImage, scene.State)
	assert.False(t, r.IsRecovering())
	assert.NoError(t, r.Err())
}

func TestRecover_FailureLeavesStoreUntouched(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: snapshotWithScenes(models.StatusGenerating, models.StatusPending)}
	s := store.New(fetcher)
	require.NoError(t, s.LoadStoryboard(context.Background(), fetcher.snapshot.Storyboard.ID))

	fetcher.setErr(fmt.Errorf("connection reset"))

	r := recovery.New(fetcher, s, 30*time.Second)
	err := r.Recover(context.Background(), fetcher.snapshot.Storyboard.ID)
	require.Error(t, err)
	assert.Error(t, r.Err())
	assert.Equal(t, 2, s.SceneCount())

	scene, _ := s.Scene(fetcher.snapshot.Scenes[0].ID)
	assert.Equal(t, models.StatusGenerating, scene.Generation.Image)
}

func TestRecover_DropsStaleOptimisticFlags(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: snapshotWithScenes(models.StatusPending)}
	s := store.New(fetcher)
	require.NoError(t, s.LoadStoryboard(context.Background(), fetcher.snapshot.Storyboard.ID))
	sceneID := fetcher.snapshot.Scenes[0].ID

	require.NoError(t, s.BeginGeneration(sceneID, store.MediumImage))
	s.MarkGenerating(sceneID, store.MediumImage)

	r := recovery.New(fetcher, s, 30*time.Second)
	require.NoError(t, r.Recover(context.Background(), fetcher.snapshot.Storyboard.ID))

	// State matches a fresh load: no optimistic status, no in-flight flag.
	assert.False(t, s.InFlight(sceneID, store.MediumImage))
	scene, _ := s.Scene(sceneID)
	assert.Equal(t, models.StatusPending, scene.Generation.Image)
}

func TestPeriodicStartStopAreIdempotent(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: snapshotWithScenes()}
	s := store.New(fetcher)
	r := recovery.New(fetcher, s, time.Minute)

	require.NoError(t, r.StartPeriodic(fetcher.snapshot.Storyboard.ID))
	require.NoError(t, r.StartPeriodic(fetcher.snapshot.Storyboard.ID))
	r.StopPeriodic()
	r.StopPeriodic()
}
