package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"storyreel-client/internal/config"
	"storyreel-client/internal/models"
	"storyreel-client/internal/sse"
)

// Medium selects which generation track of a scene an operation
// targets.
type Medium string

const (
	MediumImage Medium = "image"
	MediumVideo Medium = "video"
)

var (
	ErrUnknownScene  = errors.New("unknown scene")
	ErrSceneInFlight = errors.New("scene generation already in flight")
)

// Backend is the slice of the API client the store depends on.
type Backend interface {
	GetStoryboard(ctx context.Context, storyboardID uuid.UUID) (*models.StoryboardSnapshot, error)
	OpenStream(ctx context.Context, storyboardID uuid.UUID) (io.ReadCloser, error)
}

// Store is the client-side source of truth for one storyboard and its
// scenes. The in-memory copy is a cache: stream patches and recovery
// snapshots from the backend always win over local optimistic writes.
type Store struct {
	backend Backend

	// connectMu serializes stream connect/disconnect transitions so
	// concurrent callers cannot both pass the same-id check and spawn
	// duplicate read loops.
	connectMu sync.Mutex

	mu         sync.Mutex
	storyboard *models.Storyboard
	scenes     map[uuid.UUID]*models.Scene
	inFlight   map[uuid.UUID]map[Medium]bool
	loading    bool
	err        error

	streamID     uuid.UUID
	streamCancel context.CancelFunc
	streamDone   chan struct{}

	onStreamError    func(message string)
	onStreamComplete func()

	subs []chan struct{}
}

func New(backend Backend) *Store {
	return &Store{
		backend:  backend,
		scenes:   make(map[uuid.UUID]*models.Scene),
		inFlight: make(map[uuid.UUID]map[Medium]bool),
	}
}

// SetStreamHandlers registers callbacks for stream-level error and
// complete events. Must be called before ConnectSSE.
func (s *Store) SetStreamHandlers(onError func(message string), onComplete func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStreamError = onError
	s.onStreamComplete = onComplete
}

// LoadStoryboard fetches the authoritative snapshot and replaces local
// state wholesale. A failed fetch leaves prior state untouched.
func (s *Store) LoadStoryboard(ctx context.Context, storyboardID uuid.UUID) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()

	snapshot, err := s.backend.GetStoryboard(ctx, storyboardID)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("failed to load storyboard: %w", err)
	}
	s.replaceLocked(snapshot.Storyboard, snapshot.Scenes)
	s.mu.Unlock()
	s.notify()
	return nil
}

// ReplaceSnapshot overwrites local state with a recovery snapshot.
// Optimistic in-flight flags do not survive the replace.
func (s *Store) ReplaceSnapshot(storyboard models.Storyboard, scenes []models.Scene) {
	s.mu.Lock()
	s.replaceLocked(storyboard, scenes)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) replaceLocked(storyboard models.Storyboard, scenes []models.Scene) {
	sb := storyboard
	s.storyboard = &sb
	s.scenes = make(map[uuid.UUID]*models.Scene, len(scenes))
	for i := range scenes {
		scene := scenes[i]
		s.scenes[scene.ID] = &scene
	}
	s.inFlight = make(map[uuid.UUID]map[Medium]bool)
	s.err = nil
}

// ConnectSSE attaches the store to the storyboard event stream. It is
// idempotent: connecting to the already-connected id is a no-op, and a
// different id tears down the previous stream first. At most one
// stream is live at any time.
func (s *Store) ConnectSSE(storyboardID uuid.UUID) {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()

	s.mu.Lock()
	if s.streamID == storyboardID && s.streamCancel != nil {
		s.mu.Unlock()
		return
	}
	cancel := s.streamCancel
	done := s.streamDone
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	doneCh := make(chan struct{})

	s.mu.Lock()
	s.streamID = storyboardID
	s.streamCancel = cancelFunc
	s.streamDone = doneCh
	s.mu.Unlock()

	go s.readLoop(ctx, storyboardID, doneCh)
}

// DisconnectSSE tears down the live stream. Safe to call repeatedly.
func (s *Store) DisconnectSSE() {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()

	s.mu.Lock()
	cancel := s.streamCancel
	done := s.streamDone
	s.streamID = uuid.Nil
	s.streamCancel = nil
	s.streamDone = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Connected reports the storyboard id of the live stream, if any.
func (s *Store) Connected() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamCancel == nil {
		return uuid.Nil, false
	}
	return s.streamID, true
}

func (s *Store) readLoop(ctx context.Context, storyboardID uuid.UUID, done chan struct{}) {
	defer close(done)
	defer s.clearStream(storyboardID)

	s.mu.Lock()
	onError := s.onStreamError
	onComplete := s.onStreamComplete
	s.mu.Unlock()

	body, err := s.backend.OpenStream(ctx, storyboardID)
	if err != nil {
		if ctx.Err() == nil {
			config.Log.WithError(err).Warn("failed to open storyboard stream")
			s.setErr(err)
		}
		return
	}
	reader := sse.NewReader(body)
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err != nil {
			if ctx.Err() == nil && err != io.EOF {
				config.Log.WithError(err).Warn("storyboard stream closed unexpectedly")
			}
			return
		}
		switch event.Type {
		case sse.EventSceneUpdate:
			s.ApplyPatch(*event.Patch)
		case sse.EventError:
			config.Log.WithField("message", event.Message).Warn("storyboard stream error event")
			if onError != nil {
				onError(event.Message)
			}
		case sse.EventComplete:
			if onComplete != nil {
				onComplete()
			}
			return
		}
	}
}

// clearStream drops connection bookkeeping when the read loop exits on
// its own. A newer connection to a different id is left alone.
func (s *Store) clearStream(storyboardID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamID == storyboardID {
		s.streamID = uuid.Nil
		s.streamCancel = nil
		s.streamDone = nil
	}
}

// ApplyPatch merges a scene update by id. Only fields present in the
// patch overwrite existing state; unknown scene ids are ignored because
// the scene set is authoritative from LoadStoryboard, never grown by
// stream events. Re-applying the same patch is a no-op.
func (s *Store) ApplyPatch(patch models.ScenePatch) {
	s.mu.Lock()
	scene, ok := s.scenes[patch.SceneID]
	if !ok {
		s.mu.Unlock()
		config.Log.WithField("scene_id", patch.SceneID).Debug("ignoring update for unknown scene")
		return
	}

	if patch.State != nil {
		scene.State = *patch.State
	}
	if patch.ImageStatus != nil {
		scene.Generation.Image = *patch.ImageStatus
		if *patch.ImageStatus == models.StatusComplete || *patch.ImageStatus == models.StatusError {
			s.clearInFlightLocked(patch.SceneID, MediumImage)
		}
	}
	if patch.VideoStatus != nil {
		scene.Generation.Video = *patch.VideoStatus
		if *patch.VideoStatus == models.StatusComplete || *patch.VideoStatus == models.StatusError {
			s.clearInFlightLocked(patch.SceneID, MediumVideo)
		}
	}
	if patch.Progress != nil {
		scene.Progress = *patch.Progress
	}
	if patch.ImageURL != nil {
		scene.ImageURL = *patch.ImageURL
	}
	if patch.VideoURL != nil {
		scene.VideoURL = *patch.VideoURL
	}
	if patch.Error != nil {
		scene.ErrorMessage = *patch.Error
	}
	s.mu.Unlock()
	s.notify()
}

// ApplyScene replaces a single scene with a synchronous PATCH result.
func (s *Store) ApplyScene(updated models.Scene) {
	s.mu.Lock()
	if _, ok := s.scenes[updated.ID]; !ok {
		s.mu.Unlock()
		return
	}
	scene := updated
	s.scenes[updated.ID] = &scene
	s.mu.Unlock()
	s.notify()
}

// BeginGeneration reserves the in-flight slot for a scene medium. It
// fails when a generate call for the same medium is already pending.
func (s *Store) BeginGeneration(sceneID uuid.UUID, medium Medium) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scenes[sceneID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScene, sceneID)
	}
	if s.inFlight[sceneID][medium] {
		return fmt.Errorf("%w: scene %s %s", ErrSceneInFlight, sceneID, medium)
	}
	if s.inFlight[sceneID] == nil {
		s.inFlight[sceneID] = make(map[Medium]bool)
	}
	s.inFlight[sceneID][medium] = true
	return nil
}

// MarkGenerating records the optimistic local transition after the
// backend accepted a generate call. The authoritative status still
// arrives over the stream and wins on conflict.
func (s *Store) MarkGenerating(sceneID uuid.UUID, medium Medium) {
	s.mu.Lock()
	scene, ok := s.scenes[sceneID]
	if ok {
		switch medium {
		case MediumImage:
			scene.Generation.Image = models.StatusGenerating
		case MediumVideo:
			scene.Generation.Video = models.StatusGenerating
		}
		scene.ErrorMessage = ""
	}
	s.mu.Unlock()
	s.notify()
}

// AbortGeneration releases a reservation after a failed REST call.
func (s *Store) AbortGeneration(sceneID uuid.UUID, medium Medium) {
	s.mu.Lock()
	s.clearInFlightLocked(sceneID, medium)
	s.mu.Unlock()
}

func (s *Store) clearInFlightLocked(sceneID uuid.UUID, medium Medium) {
	if flags, ok := s.inFlight[sceneID]; ok {
		delete(flags, medium)
		if len(flags) == 0 {
			delete(s.inFlight, sceneID)
		}
	}
}

// InFlight reports whether a generate call for the medium is pending.
func (s *Store) InFlight(sceneID uuid.UUID, medium Medium) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[sceneID][medium]
}

// Reset tears down the stream and clears all state. Used on sign-out
// and project switch.
func (s *Store) Reset() {
	s.DisconnectSSE()
	s.mu.Lock()
	s.storyboard = nil
	s.scenes = make(map[uuid.UUID]*models.Scene)
	s.inFlight = make(map[uuid.UUID]map[Medium]bool)
	s.loading = false
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// Subscribe returns a channel that receives a signal after every store
// mutation. The channel is buffered; slow consumers coalesce updates.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.notify()
}

// Storyboard returns a copy of the current storyboard, if loaded.
func (s *Store) Storyboard() (models.Storyboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storyboard == nil {
		return models.Storyboard{}, false
	}
	return *s.storyboard, true
}

// Scene returns a copy of one scene by id.
func (s *Store) Scene(sceneID uuid.UUID) (models.Scene, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scene, ok := s.scenes[sceneID]
	if !ok {
		return models.Scene{}, false
	}
	return *scene, true
}

// Scenes returns copies of all scenes in scene_order sequence.
func (s *Store) Scenes() []models.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storyboard == nil {
		return nil
	}
	scenes := make([]models.Scene, 0, len(s.scenes))
	for _, id := range s.storyboard.SceneOrder {
		if scene, ok := s.scenes[id]; ok {
			scenes = append(scenes, *scene)
		}
	}
	return scenes
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
