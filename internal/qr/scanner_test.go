package qr

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// qrImage renders text as a QR code for decode tests.
func qrImage(t *testing.T, text string) image.Image {
	t.Helper()
	matrix, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, 128, 128, nil)
	if err != nil {
		t.Fatalf("encoding QR fixture: %v", err)
	}
	return matrix
}

func blankImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 128, 128))
}

// stubSource serves a fixed sequence of frames, then blanks.
type stubSource struct {
	mu     sync.Mutex
	frames []frameResult
	served int
	closes int
}

type frameResult struct {
	img image.Image
	err error
}

func (s *stubSource) Frame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.served >= len(s.frames) {
		return blankImage(), nil
	}
	frame := s.frames[s.served]
	s.served++
	return frame.img, frame.err
}

func (s *stubSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *stubSource) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func TestDecodeImageRoundTrip(t *testing.T) {
	img := qrImage(t, "rest-1;key-abc")

	text, err := DecodeImage(img)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if text != "rest-1;key-abc" {
		t.Errorf("decoded %q, want %q", text, "rest-1;key-abc")
	}
}

func TestDecodeImageBlank(t *testing.T) {
	if _, err := DecodeImage(blankImage()); !errors.Is(err, ErrNoCode) {
		t.Errorf("expected ErrNoCode for blank frame, got %v", err)
	}
}

func TestScannerDecodesFirstCode(t *testing.T) {
	source := &stubSource{frames: []frameResult{
		{img: blankImage()},
		{img: blankImage()},
		{img: qrImage(t, "emp-42")},
		{img: qrImage(t, "emp-99")}, // must never be reached
	}}
	scanner := NewScanner(source, time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	text, err := scanner.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if text != "emp-42" {
		t.Errorf("decoded %q, want %q", text, "emp-42")
	}
	if source.served > 3 {
		t.Errorf("scanner kept reading after the first decode: %d frames", source.served)
	}
	if source.closeCount() != 1 {
		t.Errorf("source closed %d times, want 1", source.closeCount())
	}
}

func TestScannerDeviceFailure(t *testing.T) {
	source := &stubSource{frames: []frameResult{
		{err: errors.New("camera busy")},
	}}
	scanner := NewScanner(source, time.Millisecond, nil)

	_, err := scanner.Run(context.Background())
	if !errors.Is(err, ErrCameraUnavailable) {
		t.Fatalf("expected ErrCameraUnavailable, got %v", err)
	}
	if source.closeCount() != 1 {
		t.Errorf("source closed %d times, want 1", source.closeCount())
	}
}

func TestScannerContextCancel(t *testing.T) {
	source := &stubSource{}
	scanner := NewScanner(source, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := scanner.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScannerStopIdempotent(t *testing.T) {
	source := &stubSource{}
	scanner := NewScanner(source, time.Millisecond, nil)

	scanner.Stop()
	scanner.Stop()

	if source.closeCount() != 1 {
		t.Errorf("source closed %d times after repeated Stop, want 1", source.closeCount())
	}

	// A stopped scanner refuses to run.
	if _, err := scanner.Run(context.Background()); err == nil {
		t.Error("Run after Stop should fail")
	}
}

func TestScannerSingleUse(t *testing.T) {
	source := &stubSource{frames: []frameResult{
		{img: qrImage(t, "emp-1")},
	}}
	scanner := NewScanner(source, time.Millisecond, nil)

	if _, err := scanner.Run(context.Background()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if _, err := scanner.Run(context.Background()); err == nil {
		t.Error("second Run on the same scanner should fail")
	}
}
