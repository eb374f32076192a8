package logger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var ErrSinkClosed = errors.New("file sink is closed")

// FileSink is a buffered, thread-safe log file that flushes itself
// periodically. It implements zapcore.WriteSyncer.
type FileSink struct {
	mu     sync.Mutex
	writer *bufio.Writer
	file   *os.File
	ticker *time.Ticker
	done   chan struct{}
	closed bool
	path   string

	// Stats
	writes  uint64
	flushes uint64
	errors  uint64
}

// OpenFileSink opens path for appending, creating parent directories.
func OpenFileSink(path string, flushInterval time.Duration) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	s := &FileSink{
		writer: bufio.NewWriter(file),
		file:   file,
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
		path:   path,
	}
	go s.periodicFlush()

	return s, nil
}

func (s *FileSink) Write(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSinkClosed
	}
	n, err := s.writer.Write(data)
	if err != nil {
		s.errors++
		return n, fmt.Errorf("failed to write log data: %w", err)
	}
	s.writes++
	return n, nil
}

// Sync flushes buffered data and fsyncs the file.
func (s *FileSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *FileSink) flushLocked() error {
	if s.closed {
		return nil
	}
	if err := s.writer.Flush(); err != nil {
		s.errors++
		return fmt.Errorf("failed to flush log file: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		s.errors++
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	s.flushes++
	return nil
}

// Flush failures are counted, not logged: the logger writes into this sink.
func (s *FileSink) periodicFlush() {
	for {
		select {
		case <-s.ticker.C:
			_ = s.Sync()
		case <-s.done:
			return
		}
	}
}

// Close flushes and closes the file. Further writes fail with ErrSinkClosed.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	close(s.done)
	s.ticker.Stop()

	if err := s.writer.Flush(); err != nil {
		s.closed = true
		s.file.Close()
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	s.closed = true
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

func (s *FileSink) Path() string { return s.path }

// GetStats returns write, flush and error counters
func (s *FileSink) GetStats() (writes, flushes, errs uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes, s.flushes, s.errors
}
