package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftmail/driftmail/internal/store"
	"github.com/driftmail/driftmail/message"
)

func parsed(raw string) *message.Email {
	return message.Parse([]byte(raw))
}

func TestSaveDerivesMetadata(t *testing.T) {
	t.Parallel()

	st := store.New()
	now := time.Now()

	email := parsed("Subject: Hi\r\nDate: Mon, 02 Jan 2023 15:04:05 -0700\r\n\r\nbody")
	m := st.Save("Box@Drift.Local", "sender@example.com", now, email)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "box@drift.local", m.Mailbox)
	assert.Equal(t, "Hi", m.Subject)
	assert.Equal(t, now, m.ReceivedAt)
	assert.False(t, m.HasAttachments)
	require.False(t, m.SentAt.IsZero())
	assert.Equal(t, 2023, m.SentAt.Year())
}

func TestSavePlaceholderSubject(t *testing.T) {
	t.Parallel()

	st := store.New()
	m := st.Save("a@b", "x@y", time.Now(), parsed("From: x@y\r\n\r\nbody"))
	assert.Equal(t, "(no subject)", m.Subject)
	assert.True(t, m.SentAt.IsZero())
}

func TestListByMailboxNewestFirst(t *testing.T) {
	t.Parallel()

	st := store.New()
	base := time.Now()
	first := st.Save("a@b", "x@y", base, parsed("Subject: first\r\n\r\n."))
	second := st.Save("a@b", "x@y", base.Add(time.Minute), parsed("Subject: second\r\n\r\n."))
	st.Save("other@b", "x@y", base, parsed("Subject: elsewhere\r\n\r\n."))

	got := st.ListByMailbox("A@B")
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	st := store.New()
	m := st.Save("a@b", "x@y", time.Now(), parsed("Subject: s\r\n\r\n."))

	assert.True(t, st.Delete(m.ID))
	assert.False(t, st.Delete(m.ID))
	_, ok := st.Get(m.ID)
	assert.False(t, ok)
	assert.Empty(t, st.ListByMailbox("a@b"))
}

func TestDeleteMailbox(t *testing.T) {
	t.Parallel()

	st := store.New()
	now := time.Now()
	st.Save("a@b", "x@y", now, parsed("Subject: 1\r\n\r\n."))
	st.Save("a@b", "x@y", now, parsed("Subject: 2\r\n\r\n."))
	st.Save("keep@b", "x@y", now, parsed("Subject: 3\r\n\r\n."))

	assert.Equal(t, 2, st.DeleteMailbox("a@b"))
	assert.Equal(t, 1, st.Len())
	require.Len(t, st.ListByMailbox("keep@b"), 1)
}

func TestPurgeOlderThan(t *testing.T) {
	t.Parallel()

	st := store.New()
	now := time.Now()
	old := st.Save("a@b", "x@y", now.Add(-2*time.Hour), parsed("Subject: old\r\n\r\n."))
	fresh := st.Save("a@b", "x@y", now, parsed("Subject: fresh\r\n\r\n."))

	assert.Equal(t, 1, st.PurgeOlderThan(now.Add(-time.Hour)))
	_, ok := st.Get(old.ID)
	assert.False(t, ok)
	_, ok = st.Get(fresh.ID)
	assert.True(t, ok)
}

func TestHasAttachments(t *testing.T) {
	t.Parallel()

	raw := "Content-Type: multipart/mixed; boundary=b\r\n" +
		"\r\n" +
		"--b\r\n" +
		"Content-Type: application/pdf\r\n" +
		"Content-Disposition: attachment; filename=\"f.pdf\"\r\n" +
		"\r\n" +
		"%PDF-1.4\r\n" +
		"--b--\r\n"

	st := store.New()
	m := st.Save("a@b", "x@y", time.Now(), parsed(raw))
	assert.True(t, m.HasAttachments)
}
