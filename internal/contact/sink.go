// Package contact records contact-form submissions.
package contact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidMessage is wrapped by submissions that fail validation
var ErrInvalidMessage = errors.New("invalid contact message")

var header = []string{"timestamp", "name", "email", "message"}

// Message is one contact-form submission
type Message struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Message string `json:"message" validate:"max=5000"`
}

// Sink appends messages to a CSV file, writing a header row when it creates the file.
// Appends are serialized, so a Sink is safe for concurrent use within one process.
type Sink struct {
	mu       sync.Mutex
	path     string
	now      func() time.Time
	validate *validator.Validate
}

// NewSink creates a sink writing to path
func NewSink(path string) *Sink {
	return &Sink{path: path, now: time.Now, validate: validator.New()}
}

// Path returns the CSV file location
func (s *Sink) Path() string {
	return s.path
}

// Append validates msg and writes it as one row: RFC 3339 UTC timestamp, name, email, message.
func (s *Sink) Append(msg Message) error {
	if err := s.validate.Struct(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open contact log: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat contact log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write contact log header: %w", err)
		}
	}

	row := []string{s.now().UTC().Format(time.RFC3339), msg.Name, msg.Email, msg.Message}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write contact message: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush contact log: %w", err)
	}
	return nil
}
