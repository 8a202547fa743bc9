// Package stage reports which deployment environment the process runs in,
// taken from the RUNNING_ENV environment variable.
package stage

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"sync"

	"github.com/amp-labs/lesson-engine/envutil"
)

// Stage is a deployment environment.
type Stage string

// ErrUnrecognizedStage is returned for a RUNNING_ENV value that isn't a known stage.
var ErrUnrecognizedStage = errors.New("unrecognized stage")

const (
	Unknown Stage = "unknown"
	Local   Stage = "local"
	Test    Stage = "test"
	Dev     Stage = "dev"
	Staging Stage = "staging"
	Prod    Stage = "prod"
)

// Parse converts a stage name, ignoring case and surrounding space.
func Parse(s string) (Stage, error) {
	switch st := Stage(strings.ToLower(strings.TrimSpace(s))); st {
	case Local, Test, Dev, Staging, Prod:
		return st, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnrecognizedStage, s)
	}
}

// Current returns the stage named by RUNNING_ENV. It is read once. Without
// a valid value it is Test under go test and Local otherwise, since the
// lessons binary usually runs on a learner's own machine.
func Current() Stage {
	return current()
}

var current = sync.OnceValue(fromEnv)

func fromEnv() Stage {
	fallback := Local
	if flag.Lookup("test.v") != nil {
		fallback = Test
	}

	return envutil.Map(envutil.String("RUNNING_ENV"), Parse).ValueOrElse(fallback)
}

func (s Stage) String() string {
	return string(s)
}
