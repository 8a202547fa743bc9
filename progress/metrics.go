package progress

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Navigation directions and outcomes used as metric labels and span attributes.
const (
	directionAdvance = "advance"
	directionRetreat = "retreat"
	directionJump    = "jump"

	outcomeMoved   = "moved"
	outcomeNoop    = "noop"
	outcomeBlocked = "blocked"
	outcomeError   = "error"
)

var (
	// transitionsTotal counts navigation attempts by lesson, direction and outcome.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_progress_transitions_total",
		Help: "Total number of navigation attempts by lesson, direction, and outcome (moved, noop, blocked, error)",
	}, []string{"lesson", "direction", "outcome"})

	// togglesTotal counts action item toggles by the resulting completion.
	togglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_progress_action_item_toggles_total",
		Help: "Total number of action item toggles by lesson and resulting completion",
	}, []string{"lesson", "completed"})

	// lessonsCompletedTotal counts sessions whose lesson went from incomplete to complete.
	lessonsCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_progress_lessons_completed_total",
		Help: "Total number of lesson completions by lesson",
	}, []string{"lesson"})

	// activeSessions tracks open sessions by lesson.
	activeSessions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lesson_progress_active_sessions",
		Help: "Number of open progression sessions by lesson",
	}, []string{"lesson"})
)

func recordTransition(lessonID, direction, outcome string) {
	transitionsTotal.WithLabelValues(sanitizeLesson(lessonID), direction, outcome).Inc()
}

func recordToggle(lessonID string, completed bool) {
	togglesTotal.WithLabelValues(sanitizeLesson(lessonID), strconv.FormatBool(completed)).Inc()
}

func sanitizeLesson(lessonID string) string {
	if lessonID == "" {
		return "unknown"
	}

	return lessonID
}
