package services

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"movie-magic-club/models"
)

// JobFeedConnection is one admin dashboard subscribed to pipeline events.
type JobFeedConnection struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// JobFeed fans automation pipeline events out to connected admin dashboards.
type JobFeed struct {
	connections map[string]*JobFeedConnection
	mu          sync.RWMutex
	events      chan models.JobEvent
}

var jobFeed *JobFeed
var jobFeedOnce sync.Once

// GetJobFeed returns the singleton event feed.
func GetJobFeed() *JobFeed {
	jobFeedOnce.Do(func() {
		jobFeed = &JobFeed{
			connections: make(map[string]*JobFeedConnection),
			events:      make(chan models.JobEvent, 100),
		}
		go jobFeed.run()
	})
	return jobFeed
}

// Subscribe registers a dashboard connection.
func (f *JobFeed) Subscribe(conn *websocket.Conn) *JobFeedConnection {
	sub := &JobFeedConnection{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}

	f.mu.Lock()
	f.connections[sub.ID] = sub
	total := len(f.connections)
	f.mu.Unlock()

	slog.Info("Job feed subscriber connected", "id", sub.ID, "total", total)
	return sub
}

// Unsubscribe drops a dashboard connection and closes its send queue.
func (f *JobFeed) Unsubscribe(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, exists := f.connections[id]; exists {
		close(sub.Send)
		delete(f.connections, id)
		slog.Info("Job feed subscriber disconnected", "id", id, "remaining", len(f.connections))
	}
}

// Publish queues an event for every connected dashboard without ever
// blocking the pipeline.
func (f *JobFeed) Publish(event models.JobEvent) {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	select {
	case f.events <- event:
	default:
		slog.Warn("Job feed queue full, dropping event", "type", event.Type, "title", event.Title)
	}
}

func (f *JobFeed) run() {
	for event := range f.events {
		jsonData, err := json.Marshal(event)
		if err != nil {
			slog.Error("Failed to marshal job event", "error", err)
			continue
		}

		f.mu.RLock()
		for _, sub := range f.connections {
			select {
			case sub.Send <- jsonData:
			default:
				slog.Warn("Job feed subscriber buffer full", "id", sub.ID)
			}
		}
		f.mu.RUnlock()
	}
}

// SubscriberCount reports how many dashboards are connected.
func (f *JobFeed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.connections)
}
