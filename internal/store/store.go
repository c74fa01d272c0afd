// Package store keeps received messages in memory for their configured
// lifetime. Nothing is persisted; a restart empties every mailbox, which
// is the contract for disposable addresses.
package store

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"github.com/driftmail/driftmail/message"
	"github.com/driftmail/driftmail/message/header"
)

// placeholderSubject stands in when a message carries no subject header.
const placeholderSubject = "(no subject)"

// Message is one stored delivery: the parsed email plus the envelope and
// bookkeeping the API exposes.
type Message struct {
	ID             string
	Mailbox        string // recipient address, lower-cased
	From           string
	Subject        string
	ReceivedAt     time.Time // arrival time, supplied by the receiver
	SentAt         time.Time // best-effort Date header parse, zero when absent
	HasAttachments bool
	Email          *message.Email
}

// Store is a concurrency-safe in-memory message store.
type Store struct {
	mu       sync.RWMutex
	messages map[string]*Message // by ID
	byBox    map[string][]string // mailbox -> IDs in arrival order
}

// New returns an empty store.
func New() *Store {
	return &Store{
		messages: make(map[string]*Message),
		byBox:    make(map[string][]string),
	}
}

// Save records a parsed email delivered to mailbox at receivedAt and
// returns the stored record. The subject falls back to a placeholder
// when the message has none, and the sent time is taken from the Date
// header when it parses.
func (s *Store) Save(mailbox, from string, receivedAt time.Time, email *message.Email) *Message {
	m := &Message{
		ID:             uuid.NewString(),
		Mailbox:        strings.ToLower(mailbox),
		From:           from,
		Subject:        email.Subject(),
		ReceivedAt:     receivedAt,
		HasAttachments: email.HasAttachments(),
		Email:          email,
	}
	if m.Subject == "" {
		m.Subject = placeholderSubject
	}
	if date := email.Headers.Get(header.Date); date != "" {
		if t, err := dateparse.ParseAny(date); err == nil {
			m.SentAt = t
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.ID] = m
	s.byBox[m.Mailbox] = append(s.byBox[m.Mailbox], m.ID)
	return m
}

// Get returns the message with the given ID.
func (s *Store) Get(id string) (*Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[id]
	return m, ok
}

// ListByMailbox returns a mailbox's messages, newest first.
func (s *Store) ListByMailbox(mailbox string) []*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byBox[strings.ToLower(mailbox)]
	out := make([]*Message, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.messages[id]; ok {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	return out
}

// Delete removes one message. It reports whether the ID existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(id)
}

// DeleteMailbox removes every message in a mailbox and returns how many
// were deleted.
func (s *Store) DeleteMailbox(mailbox string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	box := strings.ToLower(mailbox)
	ids := s.byBox[box]
	for _, id := range ids {
		delete(s.messages, id)
	}
	delete(s.byBox, box)
	return len(ids)
}

// PurgeOlderThan deletes every message received before cutoff and
// returns how many were removed.
func (s *Store) PurgeOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, m := range s.messages {
		if m.ReceivedAt.Before(cutoff) {
			if s.deleteLocked(id) {
				n++
			}
		}
	}
	return n
}

// Len returns the number of stored messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// RunCleanup purges messages older than ttl every interval until ctx is
// done.
func (s *Store) RunCleanup(ctx context.Context, ttl, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.PurgeOlderThan(now.Add(-ttl)); n > 0 {
				log.Info("purged expired messages", "count", n, "ttl", ttl)
			}
		}
	}
}

// deleteLocked removes a message from both indexes. Callers hold mu.
func (s *Store) deleteLocked(id string) bool {
	m, ok := s.messages[id]
	if !ok {
		return false
	}
	delete(s.messages, id)

	ids := s.byBox[m.Mailbox]
	for i, candidate := range ids {
		if candidate == id {
			s.byBox[m.Mailbox] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.byBox[m.Mailbox]) == 0 {
		delete(s.byBox, m.Mailbox)
	}
	return true
}
