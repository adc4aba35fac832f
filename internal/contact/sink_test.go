package contact

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSink_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact-messages.csv")
	sink := NewSink(path)
	sink.now = func() time.Time { return time.Date(2025, 3, 1, 12, 30, 0, 0, time.FixedZone("EST", -5*3600)) }

	require.NoError(t, sink.Append(Message{Name: "Sam", Email: "sam@example.com", Message: "Hello"}))
	require.NoError(t, sink.Append(Message{Name: `Lee "LJ" Jones`, Message: "Line one,\nline two"}))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"timestamp", "name", "email", "message"}, rows[0])
	assert.Equal(t, []string{"2025-03-01T17:30:00Z", "Sam", "sam@example.com", "Hello"}, rows[1])
	assert.Equal(t, []string{"2025-03-01T17:30:00Z", `Lee "LJ" Jones`, "", "Line one,\nline two"}, rows[2])
}

func TestSink_ExistingFileGetsNoSecondHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.csv")

	require.NoError(t, NewSink(path).Append(Message{Name: "A"}))
	require.NoError(t, NewSink(path).Append(Message{Name: "B"}))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[1][1])
	assert.Equal(t, "B", rows[2][1])
}

func TestSink_InvalidEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.csv")

	err := NewSink(path).Append(Message{Name: "A", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSink_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.csv")
	sink := NewSink(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Append(Message{Name: "visitor", Message: "hi"}))
		}()
	}
	wg.Wait()

	assert.Len(t, readRows(t, path), 21)
}

func TestSink_UnwritablePath(t *testing.T) {
	sink := NewSink(filepath.Join(t.TempDir(), "missing-dir", "contact.csv"))
	err := sink.Append(Message{Name: "A"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidMessage)
}
