package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/smartmate/internal/adapters/logger"
	"go.trai.ch/zerr"
)

var errSentinel = zerr.New("task not found")

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "standard error",
			err:  errors.New("boom"),
			want: []logger.ErrorEntry{{Message: "boom"}},
		},
		{
			name: "wrapped chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer"),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{}},
				{Message: "middle", Metadata: map[string]any{}},
				{Message: "root cause"},
			},
		},
		{
			name: "metadata on wrapped sentinel",
			err:  zerr.With(zerr.Wrap(errSentinel, "delete task"), "id", "42"),
			want: []logger.ErrorEntry{
				{Message: "delete task", Metadata: map[string]any{"id": "42"}},
				{Message: "task not found", Metadata: map[string]any{}},
			},
		},
		{
			name: "metadata-only link folds into the next entry",
			err:  zerr.With(errors.New("dial tcp: refused"), "url", "http://x"),
			want: []logger.ErrorEntry{
				{Message: "dial tcp: refused", Metadata: map[string]any{"url": "http://x"}},
			},
		},
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a"},
			}},
			want: "Error: error\n       alpha: a\n       zebra: z",
		},
		{
			name:    "multiline cause",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "line1\nline2", Metadata: map[string]any{"k": 1}}},
			want:    "Error: main\n\n  Caused by:\n    → line1\n      line2\n      k: 1",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
