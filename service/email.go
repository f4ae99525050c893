package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// IEmailSender defines the contract for dispatching an outgoing email.
type IEmailSender interface {
	SendEmail(to, subject, body string) error
}

// FileEmailSender appends outgoing mail to a local log file instead of
// talking to a real mail gateway.
type FileEmailSender struct {
	mu   sync.Mutex
	path string
}

func NewFileEmailSender(path string) *FileEmailSender {
	return &FileEmailSender{path: path}
}

func (s *FileEmailSender) SendEmail(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create email log directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open email log file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "\n========================================\nEMAIL SENT\n========================================\nTimestamp: %s\nTo: %s\nSubject: %s\nBody:\n%s\n========================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"), to, subject, body)
	return err
}
