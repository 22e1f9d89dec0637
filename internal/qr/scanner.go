package qr

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrCameraUnavailable is a device-level failure: the capture command
// is missing or cannot reach the camera. Unlike a per-frame miss it is
// surfaced to the user with a retry affordance.
var ErrCameraUnavailable = errors.New("falha ao acessar a câmera: verifique as permissões")

// FrameSource produces camera frames for the scanner loop.
type FrameSource interface {
	// Frame captures and returns the next frame.
	Frame(ctx context.Context) (image.Image, error)
	// Close releases the underlying device. Must be safe to call more
	// than once.
	Close() error
}

// Scanner polls a FrameSource until the first successful decode. One
// scanning flag gates both the next-frame decision and teardown, so a
// Stop racing the loop (or a second Stop) is harmless.
type Scanner struct {
	source   FrameSource
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	scanning bool
	closed   bool
}

func NewScanner(source FrameSource, interval time.Duration, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Scanner{
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Run scans frames until a QR code decodes, the context ends, or Stop
// is called. At most one decoded payload is acted on; the source is
// released before returning.
func (s *Scanner) Run(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.scanning || s.closed {
		s.mu.Unlock()
		return "", errors.New("scanner já em uso")
	}
	s.scanning = true
	s.mu.Unlock()

	defer s.Stop()

	for {
		if !s.isScanning() {
			return "", context.Canceled
		}

		img, err := s.source.Frame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			s.logger.Error("camera frame capture failed", "error", err)
			return "", fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
		}

		text, err := DecodeImage(img)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrNoCode) {
			s.logger.Debug("frame decode failure", "error", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// Stop ends the scan and releases the camera. Safe to call multiple
// times and from teardown paths that race the loop.
func (s *Scanner) Stop() {
	s.mu.Lock()
	alreadyClosed := s.closed
	s.scanning = false
	s.closed = true
	s.mu.Unlock()

	if alreadyClosed {
		return
	}
	if err := s.source.Close(); err != nil {
		s.logger.Debug("releasing camera source", "error", err)
	}
}

func (s *Scanner) isScanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanning
}

// commandSource shoots one photo per frame through an external capture
// command (termux-camera-photo style), reading the result back from a
// temp file.
type commandSource struct {
	command string
	dir     string

	mu     sync.Mutex
	closed bool
}

// NewCommandSource builds a FrameSource around a capture command. The
// command receives the output path as its last argument.
func NewCommandSource(command string) (FrameSource, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrCameraUnavailable
	}
	dir, err := os.MkdirTemp("", "ponto-scan-")
	if err != nil {
		return nil, fmt.Errorf("creating capture dir: %w", err)
	}
	return &commandSource{command: command, dir: dir}, nil
}

func (c *commandSource) Frame(ctx context.Context) (image.Image, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCameraUnavailable
	}
	c.mu.Unlock()

	out := filepath.Join(c.dir, "frame.jpg")
	parts := strings.Fields(c.command)
	args := append(parts[1:], out)

	cmd := exec.CommandContext(ctx, parts[0], args...)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("capture command: %w", err)
	}

	f, err := os.Open(out)
	if err != nil {
		return nil, fmt.Errorf("reading captured frame: %w", err)
	}
	defer f.Close()
	defer os.Remove(out)

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding captured frame: %w", err)
	}
	return img, nil
}

func (c *commandSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return os.RemoveAll(c.dir)
}

// fileSource serves one image file once, then reports no further
// frames.
type fileSource struct {
	path string
	used bool
}

// NewFileSource builds a single-shot FrameSource from an image file.
func NewFileSource(path string) FrameSource {
	return &fileSource{path: path}
}

func (f *fileSource) Frame(ctx context.Context) (image.Image, error) {
	if f.used {
		return nil, fmt.Errorf("%w: imagem já processada", ErrCameraUnavailable)
	}
	f.used = true

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", f.path, err)
	}
	return img, nil
}

func (f *fileSource) Close() error { return nil }
