// Package smtpd receives mail over SMTP and hands each parsed message to
// the store, one record per recipient mailbox.
package smtpd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/driftmail/driftmail/internal/store"
	"github.com/driftmail/driftmail/message"
)

// Backend creates a session per SMTP connection.
type Backend struct {
	Store *store.Store
	// Domain restricts accepted recipients to one domain when set.
	Domain string
	Log    *slog.Logger
}

// NewSession implements smtp.Backend.
func (b *Backend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &session{backend: b}, nil
}

// NewServer builds a configured SMTP server around the backend.
func NewServer(b *Backend, listen string, maxBytes int64) *smtp.Server {
	s := smtp.NewServer(b)
	s.Addr = listen
	s.Domain = b.Domain
	s.MaxMessageBytes = maxBytes
	s.MaxRecipients = 50
	s.ReadTimeout = time.Minute
	s.WriteTimeout = time.Minute
	return s
}

type session struct {
	backend *Backend
	from    string
	rcpt    []string
}

func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	s.from = cleanAddress(from)
	return nil
}

func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	address := cleanAddress(to)
	if d := s.backend.Domain; d != "" && !strings.HasSuffix(address, "@"+strings.ToLower(d)) {
		return fmt.Errorf("relay not permitted for %s", to)
	}
	s.rcpt = append(s.rcpt, address)
	return nil
}

func (s *session) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read message data: %w", err)
	}

	// The decoder cannot fail; malformed input costs at worst an empty
	// body.
	email := message.Parse(raw)

	now := time.Now()
	for _, box := range s.rcpt {
		m := s.backend.Store.Save(box, s.from, now, email)
		s.backend.Log.Info("message stored",
			"id", m.ID,
			"mailbox", box,
			"from", s.from,
			"subject", m.Subject,
			"attachments", len(email.Attachments),
			"bytes", len(raw),
		)
	}
	return nil
}

func (s *session) Reset() {
	s.from, s.rcpt = "", nil
}

func (s *session) Logout() error {
	return nil
}

// cleanAddress reduces an SMTP envelope argument to a bare lower-cased
// address. The strict go-addr parser is tried first; anything it rejects
// is trimmed by hand so a sloppy client still gets routed.
func cleanAddress(v string) string {
	if mb, err := addr.ParseEmailMailbox(v); err == nil {
		return strings.ToLower(mb.Address())
	}
	v = strings.Trim(strings.TrimSpace(v), "<>")
	return strings.ToLower(v)
}
