// Package web serves the JSON API over the message store: mailbox
// creation, message listing, message retrieval, attachment download, and
// deletion.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/driftmail/driftmail/internal/mailbox"
	"github.com/driftmail/driftmail/internal/store"
)

// Server holds the API's collaborators.
type Server struct {
	store   *store.Store
	domain  string
	log     *slog.Logger
	limiter *limiter
}

// New builds an API server. rateLimit requests per window per client IP
// are allowed; zero disables limiting.
func New(st *store.Store, domain string, log *slog.Logger, rateLimit int, window time.Duration) *Server {
	return &Server{
		store:   st,
		domain:  domain,
		log:     log,
		limiter: newLimiter(rateLimit, window),
	}
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/mailboxes", s.handleCreateMailbox)
	mux.HandleFunc("GET /api/mailboxes/{address}/messages", s.handleListMessages)
	mux.HandleFunc("DELETE /api/mailboxes/{address}", s.handleDeleteMailbox)
	mux.HandleFunc("GET /api/messages/{id}", s.handleGetMessage)
	mux.HandleFunc("DELETE /api/messages/{id}", s.handleDeleteMessage)
	mux.HandleFunc("GET /api/messages/{id}/attachments/{index}", s.handleGetAttachment)
	return s.rateLimit(mux)
}

type mailboxResponse struct {
	Address string `json:"address"`
}

type messageSummary struct {
	ID             string    `json:"id"`
	From           string    `json:"from"`
	Subject        string    `json:"subject"`
	ReceivedAt     time.Time `json:"received_at"`
	HasAttachments bool      `json:"has_attachments"`
}

type attachmentMeta struct {
	Index       int    `json:"index"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type messageDetail struct {
	messageSummary
	SentAt      *time.Time        `json:"sent_at,omitempty"`
	Headers     map[string]string `json:"headers"`
	Text        string            `json:"text"`
	HTML        string            `json:"html"`
	Attachments []attachmentMeta  `json:"attachments"`
}

func (s *Server) handleCreateMailbox(w http.ResponseWriter, _ *http.Request) {
	address := mailbox.Random(s.domain)
	s.log.Info("mailbox created", "address", address)
	writeJSON(w, http.StatusCreated, mailboxResponse{Address: address})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	address := mailbox.Normalize(r.PathValue("address"))
	messages := s.store.ListByMailbox(address)

	out := make([]messageSummary, 0, len(messages))
	for _, m := range messages {
		out = append(out, summarize(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteMailbox(w http.ResponseWriter, r *http.Request) {
	address := mailbox.Normalize(r.PathValue("address"))
	n := s.store.DeleteMailbox(address)
	s.log.Info("mailbox emptied", "address", address, "deleted", n)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}

	detail := messageDetail{
		messageSummary: summarize(m),
		Headers:        m.Email.Headers,
		Text:           m.Email.Text,
		HTML:           m.Email.HTML,
		Attachments:    make([]attachmentMeta, 0, len(m.Email.Attachments)),
	}
	if !m.SentAt.IsZero() {
		detail.SentAt = &m.SentAt
	}
	for i, att := range m.Email.Attachments {
		detail.Attachments = append(detail.Attachments, attachmentMeta{
			Index:       i,
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Size:        att.Size,
		})
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetAttachment(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index >= len(m.Email.Attachments) {
		writeError(w, http.StatusNotFound, "attachment not found")
		return
	}

	att := m.Email.Attachments[index]
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+att.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(att.Size))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(att.Content)
}

func summarize(m *store.Message) messageSummary {
	return messageSummary{
		ID:             m.ID,
		From:           m.From,
		Subject:        m.Subject,
		ReceivedAt:     m.ReceivedAt,
		HasAttachments: m.HasAttachments,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
