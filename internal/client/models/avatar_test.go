package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempPNG(t *testing.T, extra int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "avatar.png")
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, extra)...)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNewAvatarCandidate_FillsFields(t *testing.T) {
	path := writeTempPNG(t, 100)

	c, err := NewAvatarCandidate(path)
	require.NoError(t, err)
	require.Equal(t, path, c.Path)
	require.Equal(t, int64(108), c.Size)
	require.Equal(t, "image/png", c.MIME)
}

func TestNewAvatarCandidate_MissingFile(t *testing.T) {
	_, err := NewAvatarCandidate(filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
}

func TestAvatarCandidate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cand    AvatarCandidate
		wantErr error
	}{
		{
			name: "small image accepted",
			cand: AvatarCandidate{Size: 1024, MIME: "image/jpeg"},
		},
		{
			name: "exactly at the limit accepted",
			cand: AvatarCandidate{Size: MaxAvatarBytes, MIME: "image/png"},
		},
		{
			name:    "one byte over the limit rejected",
			cand:    AvatarCandidate{Size: MaxAvatarBytes + 1, MIME: "image/png"},
			wantErr: ErrAvatarTooLarge,
		},
		{
			name:    "non-image rejected",
			cand:    AvatarCandidate{Size: 10, MIME: "application/pdf"},
			wantErr: ErrAvatarNotImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cand.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
