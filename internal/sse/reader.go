package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/google/uuid"
	"storyreel-client/internal/config"
	"storyreel-client/internal/models"
)

type EventType string

const (
	EventSceneUpdate EventType = "scene_update"
	EventError       EventType = "error"
	EventComplete    EventType = "complete"
)

// Event is one decoded frame from the storyboard stream.
type Event struct {
	Type    EventType
	Patch   *models.ScenePatch // set for scene_update
	Message string             // set for error/complete
}

type streamNotice struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Reader decodes a text/event-stream body into typed events. Malformed
// payloads are dropped and logged; they never terminate the stream.
type Reader struct {
	rc      io.ReadCloser
	scanner *bufio.Scanner
}

func NewReader(rc io.ReadCloser) *Reader {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{rc: rc, scanner: scanner}
}

// Next blocks until the next well-formed event arrives. It returns
// io.EOF once the transport closes.
func (r *Reader) Next() (*Event, error) {
	eventName := ""
	var data strings.Builder

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			event, ok := r.decode(eventName, data.String())
			eventName = ""
			data.Reset()
			if ok {
				return event, nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		if value, ok := strings.CutPrefix(line, "event:"); ok {
			eventName = strings.TrimSpace(value)
			continue
		}
		if value, ok := strings.CutPrefix(line, "data:"); ok {
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(value, " "))
			continue
		}
		// id:/retry: and anything else are irrelevant here.
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// decode turns one accumulated frame into an event. It reports false
// for frames that should be skipped.
func (r *Reader) decode(eventName, data string) (*Event, bool) {
	switch EventType(eventName) {
	case EventSceneUpdate:
		var patch models.ScenePatch
		if err := json.Unmarshal([]byte(data), &patch); err != nil {
			config.Log.WithError(err).Warn("dropping malformed scene_update event")
			return nil, false
		}
		if patch.SceneID == uuid.Nil {
			config.Log.Warn("dropping scene_update event without scene_id")
			return nil, false
		}
		return &Event{Type: EventSceneUpdate, Patch: &patch}, true
	case EventError:
		var notice streamNotice
		_ = json.Unmarshal([]byte(data), &notice)
		message := notice.Message
		if message == "" {
			message = notice.Error
		}
		return &Event{Type: EventError, Message: message}, true
	case EventComplete:
		var notice streamNotice
		_ = json.Unmarshal([]byte(data), &notice)
		return &Event{Type: EventComplete, Message: notice.Message}, true
	case "":
		// Keep-alive frame with no event name.
		return nil, false
	default:
		config.Log.WithField("event", eventName).Debug("ignoring unknown stream event")
		return nil, false
	}
}

func (r *Reader) Close() error {
	return r.rc.Close()
}
