package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  *zapcore.Level
	}{
		{"debug", levelPtr(zapcore.DebugLevel)},
		{"info", levelPtr(zapcore.InfoLevel)},
		{"warn", levelPtr(zapcore.WarnLevel)},
		{"error", levelPtr(zapcore.ErrorLevel)},
		{"", nil},
		{"fatal", nil},
		{"verbose", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parseLevel(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, *tt.want)
			}
		})
	}
}

func TestWithKeepsInterface(t *testing.T) {
	log := New("error", false)
	child := log.With(String("board_id", "b1"))
	if child == nil {
		t.Fatal("With() returned nil")
	}
	child.Info("discarded at error level")
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
