package geo

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubProvider struct {
	coords Coordinates
	err    error
	delay  time.Duration
}

func (p stubProvider) Current(ctx context.Context) (Coordinates, error) {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return Coordinates{}, ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return p.coords, p.err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		wantErr  error
	}{
		{
			name:     "nil provider",
			provider: nil,
			wantErr:  ErrUnavailable,
		},
		{
			name:     "permission denied passes through",
			provider: stubProvider{err: ErrPermissionDenied},
			wantErr:  ErrPermissionDenied,
		},
		{
			name:     "unavailable passes through",
			provider: stubProvider{err: ErrUnavailable},
			wantErr:  ErrUnavailable,
		},
		{
			name:     "unknown failure folds into unavailable",
			provider: stubProvider{err: errors.New("gps exploded")},
			wantErr:  ErrUnavailable,
		},
		{
			name:     "success",
			provider: stubProvider{coords: Coordinates{Latitude: -23.55, Longitude: -46.63}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := Resolve(context.Background(), tt.provider, time.Second)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if coords.Latitude != -23.55 || coords.Longitude != -46.63 {
				t.Errorf("coords = %+v", coords)
			}
		})
	}
}

func TestResolveTimeout(t *testing.T) {
	provider := stubProvider{delay: time.Second, coords: Coordinates{Latitude: 1, Longitude: 1}}

	_, err := Resolve(context.Background(), provider, 20*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestStaticProvider(t *testing.T) {
	p := StaticProvider{Coords: Coordinates{Latitude: -23.55, Longitude: -46.63}}
	coords, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if coords != p.Coords {
		t.Errorf("coords = %+v, want %+v", coords, p.Coords)
	}

	// A zero origin means the kiosk position was never configured.
	if _, err := (StaticProvider{}).Current(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for unset coordinates, got %v", err)
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    Coordinates
		wantErr bool
	}{
		{
			name: "json",
			out:  `{"latitude": -23.55, "longitude": -46.63, "accuracy": 12.5}`,
			want: Coordinates{Latitude: -23.55, Longitude: -46.63, Accuracy: 12.5},
		},
		{
			name: "space separated",
			out:  "-23.55 -46.63\n",
			want: Coordinates{Latitude: -23.55, Longitude: -46.63},
		},
		{
			name: "comma separated",
			out:  "-23.55,-46.63",
			want: Coordinates{Latitude: -23.55, Longitude: -46.63},
		},
		{name: "empty", out: "  ", wantErr: true},
		{name: "malformed json", out: "{nope", wantErr: true},
		{name: "single field", out: "-23.55", wantErr: true},
		{name: "non numeric", out: "lat lon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOutput(tt.out)
			if tt.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Fatalf("expected ErrUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOutput failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseOutput = %+v, want %+v", got, tt.want)
			}
		})
	}
}
