package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/qfill/internal/shared"
)

func TestAutoFillConfigValidate(t *testing.T) {
	valid := AutoFillConfig{
		Enabled:   true,
		Mode:      ModeGenre,
		Threshold: 4,
		BatchSize: 5,
		Genres:    []string{"Jazz"},
	}

	tests := []struct {
		name    string
		mutate  func(c AutoFillConfig) AutoFillConfig
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c AutoFillConfig) AutoFillConfig { return c },
		},
		{
			name:    "zero threshold",
			mutate:  func(c AutoFillConfig) AutoFillConfig { c.Threshold = 0; return c },
			wantErr: true,
		},
		{
			name:    "negative batch size",
			mutate:  func(c AutoFillConfig) AutoFillConfig { c.BatchSize = -1; return c },
			wantErr: true,
		},
		{
			name:    "unknown mode",
			mutate:  func(c AutoFillConfig) AutoFillConfig { c.Mode = Mode(99); return c },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAutoFillConfigClone(t *testing.T) {
	orig := AutoFillConfig{Mode: ModeGenre, Threshold: 1, BatchSize: 1, Genres: []string{"Rock"}}
	copied := orig.Clone()

	copied.Genres[0] = "Pop"
	if orig.Genres[0] != "Rock" {
		t.Error("Clone should not alias the genre slice")
	}
}

func TestParseMode(t *testing.T) {
	tc := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"artist", ModeArtist, false},
		{"genre", ModeGenre, false},
		{"shuffle", ModeArtist, true},
		{"", ModeArtist, true},
	}

	for _, tt := range tc {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("ParseMode(%q): expected ErrInvalidConfig, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}
}

func TestPlayStateRoundTrip(t *testing.T) {
	for _, s := range []PlayState{StateStopped, StatePlaying, StatePaused} {
		if got := ParsePlayState(s.String()); got != s {
			t.Errorf("ParsePlayState(%q) = %v, want %v", s.String(), got, s)
		}
	}

	if got := ParsePlayState("garbage"); got != StateStopped {
		t.Errorf("unknown state should map to stop, got %v", got)
	}
}
