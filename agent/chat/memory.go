package chat

import (
	"context"
	"strings"
	"sync"
)

// Memory is the caller-owned conversation history collaborator. Persistence
// is out of scope here; implementations may be process-local or backed by an
// external store.
type Memory interface {
	Buffer(ctx context.Context, sessionID string) (string, error)
	Save(ctx context.Context, sessionID, userMessage, reply string) error
}

// BufferMemory keeps per-session transcripts in process memory. Safe for
// concurrent use.
type BufferMemory struct {
	mu       sync.Mutex
	sessions map[string][]string
}

func NewBufferMemory() *BufferMemory {
	return &BufferMemory{sessions: make(map[string][]string)}
}

func (m *BufferMemory) Buffer(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(m.sessions[sessionID], "\n"), nil
}

func (m *BufferMemory) Save(ctx context.Context, sessionID, userMessage, reply string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID],
		"Customer: "+userMessage,
		"Zita: "+reply,
	)
	return nil
}

type noopMemory struct{}

func (noopMemory) Buffer(context.Context, string) (string, error) { return "", nil }

func (noopMemory) Save(context.Context, string, string, string) error { return nil }
