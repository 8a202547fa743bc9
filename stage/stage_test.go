package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Stage
		wantErr bool
	}{
		{in: "local", want: Local},
		{in: " PROD ", want: Prod},
		{in: "staging", want: Staging},
		{in: "unknown", want: Unknown, wantErr: true},
		{in: "qa", want: Unknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnrecognizedStage)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RUNNING_ENV", "dev")
	assert.Equal(t, Dev, fromEnv())

	t.Setenv("RUNNING_ENV", "nonsense")
	assert.Equal(t, Test, fromEnv(), "invalid values fall back to the test stage under go test")
}
