package build

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bi   *debug.BuildInfo
		want Info
		str  string
	}{
		{
			name: "devel",
			bi:   &debug.BuildInfo{GoVersion: "go1.25.0"},
			want: Info{Version: "(devel)", GoVersion: "go1.25.0"},
			str:  "(devel)",
		},
		{
			name: "stamped",
			bi: &debug.BuildInfo{
				GoVersion: "go1.25.0",
				Main:      debug.Module{Version: "v1.2.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "3f2a9c1d5e6b7a8f"},
					{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: Info{
				Version:   "v1.2.0",
				GitCommit: "3f2a9c1d5e6b7a8f",
				GitDate:   "2026-10-01T12:00:00Z",
				Modified:  true,
				GoVersion: "go1.25.0",
			},
			str: "v1.2.0 (3f2a9c1, modified)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromBuildInfo(tt.bi)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, Current().Version)
}
