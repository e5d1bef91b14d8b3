package store

import "storyreel-client/internal/models"

// Derived read-only views over the store, recomputed on demand.

// CurrentScene resolves the scene at a position in scene_order.
func (s *Store) CurrentScene(index int) (models.Scene, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storyboard == nil || index < 0 || index >= len(s.storyboard.SceneOrder) {
		return models.Scene{}, false
	}
	scene, ok := s.scenes[s.storyboard.SceneOrder[index]]
	if !ok {
		return models.Scene{}, false
	}
	return *scene, true
}

// ReadyCount counts scenes with a confirmed final clip.
func (s *Store) ReadyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, scene := range s.scenes {
		if scene.ReadyForComposition() {
			count++
		}
	}
	return count
}

// ErrorCount counts scenes whose image or video generation failed.
func (s *Store) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, scene := range s.scenes {
		if scene.Generation.Image == models.StatusError || scene.Generation.Video == models.StatusError {
			count++
		}
	}
	return count
}

// AllReady reports whether every scene can go into the final
// composition. An empty scene list is never ready: zero clips cannot
// compose a video.
func (s *Store) AllReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenes) == 0 {
		return false
	}
	for _, scene := range s.scenes {
		if !scene.ReadyForComposition() {
			return false
		}
	}
	return true
}

// SceneCount returns the number of scenes currently tracked.
func (s *Store) SceneCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scenes)
}
