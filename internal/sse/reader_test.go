package sse_test

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyreel-client/internal/models"
	"storyreel-client/internal/sse"
)

func TestReader_SceneUpdate(t *testing.T) {
	sceneID := uuid.New()
	stream := "event: scene_update\n" +
		"data: {\"scene_id\":\"" + sceneID.String() + "\",\"image_status\":\"complete\",\"image_url\":\"https://cdn.example.com/a.png\"}\n" +
		"\n"

	reader := sse.NewReader(io.NopCloser(strings.NewReader(stream)))
	defer reader.Close()

	event, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, sse.EventSceneUpdate, event.Type)
	require.NotNil(t, event.Patch)
	assert.Equal(t, sceneID, event.Patch.SceneID)
	require.NotNil(t, event.Patch.ImageStatus)
	assert.Equal(t, models.StatusComplete, *event.Patch.ImageStatus)
	assert.Nil(t, event.Patch.VideoStatus)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_MalformedPayloadDoesNotPoisonStream(t *testing.T) {
	sceneID := uuid.New()
	stream := "event: scene_update\n" +
		"data: {not json\n" +
		"\n" +
		"event: scene_update\n" +
		"data: {\"image_status\":\"complete\"}\n" + // missing scene_id
		"\n" +
		"event: scene_update\n" +
		"data: {\"scene_id\":\"" + sceneID.String() + "\",\"video_status\":\"generating\"}\n" +
		"\n"

	reader := sse.NewReader(io.NopCloser(strings.NewReader(stream)))
	defer reader.Close()

	event, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, sse.EventSceneUpdate, event.Type)
	assert.Equal(t, sceneID, event.Patch.SceneID)
	require.NotNil(t, event.Patch.VideoStatus)
	assert.Equal(t, models.StatusGenerating, *event.Patch.VideoStatus)
}

func TestReader_ErrorAndCompleteEvents(t *testing.T) {
	stream := "event: error\n" +
		"data: {\"message\":\"gpu pool exhausted\"}\n" +
		"\n" +
		"event: complete\n" +
		"data: {}\n" +
		"\n"

	reader := sse.NewReader(io.NopCloser(strings.NewReader(stream)))
	defer reader.Close()

	event, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, sse.EventError, event.Type)
	assert.Equal(t, "gpu pool exhausted", event.Message)

	event, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, sse.EventComplete, event.Type)
}

func TestReader_IgnoresCommentsAndUnknownEvents(t *testing.T) {
	sceneID := uuid.New()
	stream := ": keep-alive\n" +
		"\n" +
		"event: heartbeat\n" +
		"data: {}\n" +
		"\n" +
		"event: scene_update\n" +
		"data: {\"scene_id\":\"" + sceneID.String() + "\",\"state\":\"image\"}\n" +
		"\n"

	reader := sse.NewReader(io.NopCloser(strings.NewReader(stream)))
	defer reader.Close()

	event, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, sse.EventSceneUpdate, event.Type)
	require.NotNil(t, event.Patch.State)
	assert.Equal(t, models.SceneStateImage, *event.Patch.State)
}
