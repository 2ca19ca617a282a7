package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a transient user-facing message. It dismisses itself: once its
// TTL passes it disappears from Active() without any explicit ack.
type Notice struct {
	ID        string      `json:"id"`
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// NoticeService buffers transient notices for the UI to poll. Submission
// failures land here instead of failing the form; the form stays usable.
type NoticeService struct {
	ttl time.Duration

	mu      sync.Mutex
	notices []Notice
}

func NewNoticeService(ttl time.Duration) *NoticeService {
	return &NoticeService{ttl: ttl}
}

func (s *NoticeService) Push(level NoticeLevel, message string) Notice {
	now := time.Now().UTC()
	n := Notice{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
	return n
}

// Active returns the unexpired notices, oldest first, evicting the rest.
func (s *NoticeService) Active() []Notice {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notices[:0]
	for _, n := range s.notices {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	s.notices = kept

	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
