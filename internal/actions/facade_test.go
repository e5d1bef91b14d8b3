package actions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyreel-client/internal/actions"
	"storyreel-client/internal/backend"
	"storyreel-client/internal/models"
	"storyreel-client/internal/store"
)

type harness struct {
	facade       *actions.Facade
	store        *store.Store
	storyboardID uuid.UUID
	sceneIDs     []uuid.UUID

	generateCalls atomic.Int64
	generateFail  atomic.Bool
	patchCalls    atomic.Int64
}

func newHarness(t *testing.T, sceneCount int, ready bool) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{storyboardID: uuid.New()}
	snapshot := models.StoryboardSnapshot{
		Storyboard: models.Storyboard{ID: h.storyboardID},
	}
	for i := 0; i < sceneCount; i++ {
		scene := models.Scene{
			ID:           uuid.New(),
			StoryboardID: h.storyboardID,
			State:        models.SceneStateText,
			Description:  "a scene",
			Duration:     models.DefaultSceneDuration,
			Generation:   models.GenerationStatus{Image: models.StatusPending, Video: models.StatusPending},
		}
		if ready {
			scene.State = models.SceneStateVideo
			scene.Generation = models.GenerationStatus{Image: models.StatusComplete, Video: models.StatusComplete}
		}
		snapshot.Scenes = append(snapshot.Scenes, scene)
		snapshot.Storyboard.SceneOrder = append(snapshot.Storyboard.SceneOrder, scene.ID)
		h.sceneIDs = append(h.sceneIDs, scene.ID)
	}

	router := gin.New()
	router.GET("/api/storyboard/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, snapshot)
	})
	generate := func(c *gin.Context) {
		h.generateCalls.Add(1)
		if h.generateFail.Load() {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "generation service unavailable"})
			return
		}
		c.JSON(http.StatusAccepted, models.GenerateResponse{SceneID: c.Param("id"), JobID: "job-1", Status: "queued"})
	}
	router.POST("/api/storyboard/scene/:id/image", generate)
	router.POST("/api/storyboard/scene/:id/video", generate)
	router.PATCH("/api/storyboard/scene/:id", func(c *gin.Context) {
		h.patchCalls.Add(1)
		var req models.UpdateSceneRequest
		require.NoError(t, c.ShouldBindJSON(&req))
		sceneID, err := uuid.Parse(c.Param("id"))
		require.NoError(t, err)
		updated := snapshot.Scenes[0]
		updated.ID = sceneID
		if req.Description != nil {
			updated.Description = *req.Description
		}
		if req.Duration != nil {
			updated.Duration = *req.Duration
		}
		c.JSON(http.StatusOK, updated)
	})

	router.POST("/api/storyboard/:id/compose", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, models.ComposeResponse{
			StoryboardID: c.Param("id"),
			JobID:        "compose-1",
			Status:       "queued",
		})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	client := backend.NewClient(server.URL, "test-token")
	h.store = store.New(client)
	h.facade = actions.New(client, h.store)
	require.NoError(t, h.store.LoadStoryboard(context.Background(), h.storyboardID))
	return h
}

func TestGenerateImage_OptimisticTransition(t *testing.T) {
	h := newHarness(t, 1, false)
	sceneID := h.sceneIDs[0]

	require.NoError(t, h.facade.GenerateImage(context.Background(), sceneID))

	scene, _ := h.store.Scene(sceneID)
	assert.Equal(t, models.StatusGenerating, scene.Generation.Image)
	assert.True(t, h.store.InFlight(sceneID, store.MediumImage))
	assert.Equal(t, int64(1), h.generateCalls.Load())
}

func TestGenerateImage_SecondCallRejectedWhileInFlight(t *testing.T) {
	h := newHarness(t, 1, false)
	sceneID := h.sceneIDs[0]

	require.NoError(t, h.facade.GenerateImage(context.Background(), sceneID))
	err := h.facade.GenerateImage(context.Background(), sceneID)
	assert.ErrorIs(t, err, store.ErrSceneInFlight)
	assert.Equal(t, int64(1), h.generateCalls.Load())
}

func TestGenerateVideo_RESTFailureSurfacesImmediately(t *testing.T) {
	h := newHarness(t, 1, false)
	sceneID := h.sceneIDs[0]
	h.generateFail.Store(true)

	err := h.facade.GenerateVideo(context.Background(), sceneID)
	require.Error(t, err)

	var backendErr *backend.BackendError
	assert.ErrorAs(t, err, &backendErr)

	// No optimistic transition, no stuck reservation.
	scene, _ := h.store.Scene(sceneID)
	assert.Equal(t, models.StatusPending, scene.Generation.Video)
	assert.False(t, h.store.InFlight(sceneID, store.MediumVideo))

	h.generateFail.Store(false)
	assert.NoError(t, h.facade.GenerateVideo(context.Background(), sceneID))
}

func TestUpdateSceneDuration_ValidatesBeforeNetwork(t *testing.T) {
	h := newHarness(t, 1, false)
	sceneID := h.sceneIDs[0]

	for _, seconds := range []int{0, 11, -3} {
		err := h.facade.UpdateSceneDuration(context.Background(), sceneID, seconds)
		require.Error(t, err)
		assert.True(t, backend.IsValidation(err))
	}
	assert.Equal(t, int64(0), h.patchCalls.Load())

	require.NoError(t, h.facade.UpdateSceneDuration(context.Background(), sceneID, 8))
	scene, _ := h.store.Scene(sceneID)
	assert.Equal(t, 8, scene.Duration)
	assert.Equal(t, int64(1), h.patchCalls.Load())
}

func TestUpdateSceneText_RejectsEmpty(t *testing.T) {
	h := newHarness(t, 1, false)
	sceneID := h.sceneIDs[0]

	err := h.facade.UpdateSceneText(context.Background(), sceneID, "")
	require.Error(t, err)
	assert.True(t, backend.IsValidation(err))
	assert.Equal(t, int64(0), h.patchCalls.Load())

	require.NoError(t, h.facade.UpdateSceneText(context.Background(), sceneID, "the fox pauses at a crosswalk"))
	scene, _ := h.store.Scene(sceneID)
	assert.Equal(t, "the fox pauses at a crosswalk", scene.Description)
}

func TestComposeVideo_RequiresAllScenesReady(t *testing.T) {
	h := newHarness(t, 2, false)

	_, err := h.facade.ComposeVideo(context.Background(), "")
	assert.ErrorIs(t, err, actions.ErrNotAllReady)
}

func TestComposeVideo_SubmitsWhenReady(t *testing.T) {
	h := newHarness(t, 2, true)

	resp, err := h.facade.ComposeVideo(context.Background(), "https://cdn.example.com/track.mp3")
	require.NoError(t, err)
	assert.Equal(t, "compose-1", resp.JobID)
	assert.Equal(t, h.storyboardID.String(), resp.StoryboardID)
}
