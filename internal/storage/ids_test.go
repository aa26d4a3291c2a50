package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		docID   string
		want    string
		wantErr error
	}{
		{name: "same ids", id: "n1", docID: "n1", want: "n1"},
		{name: "empty doc id", id: "n1", docID: "", want: "n1"},
		{name: "empty id", id: "", docID: "n1", wantErr: ErrEmptyID},
		{name: "mismatch", id: "n1", docID: "n2", wantErr: ErrIDMismatch},
		{name: "uuid", id: "0190a6f2-7c1e-7d3a-9b4f-1e2d3c4b5a69", want: "0190a6f2-7c1e-7d3a-9b4f-1e2d3c4b5a69"},
		{name: "inner dot", id: "note.v2", want: "note.v2"},
		{name: "parent segment", id: "../vault", wantErr: ErrInvalidID},
		{name: "bare dot dot", id: "..", wantErr: ErrInvalidID},
		{name: "dot", id: ".", wantErr: ErrInvalidID},
		{name: "slash", id: "notes/n1", wantErr: ErrInvalidID},
		{name: "backslash", id: `..\vault`, wantErr: ErrInvalidID},
		{name: "windows separator", id: `a\b`, wantErr: ErrInvalidID},
		{name: "nul byte", id: "n1\x00", wantErr: ErrInvalidID},
		{name: "invalid id with matching doc id", id: "../vault", docID: "../vault", wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveID(tt.id, tt.docID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("n1"))
	assert.ErrorIs(t, ValidateID(""), ErrEmptyID)
	assert.ErrorIs(t, ValidateID("a/../b"), ErrInvalidID)
	assert.ErrorIs(t, ValidateID("/abs"), ErrInvalidID)
}
