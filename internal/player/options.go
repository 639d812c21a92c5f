package player

import (
	"time"

	"github.com/abhisek/prepsmart/internal/logging"
)

// DefaultQuizDelay is the pause between a quiz answer and the next question.
const DefaultQuizDelay = time.Second

// CompletionHook runs once after a session completes, before navigation.
type CompletionHook func(CompletionEvent) error

type settings struct {
	notifier  Notifier
	navigator Navigator
	scheduler Scheduler
	quizDelay time.Duration
	log       *logging.Logger
	hook      CompletionHook
	exitPath  string
	user      *User
	now       func() time.Time
}

func defaultSettings() settings {
	return settings{
		notifier:  nopNotifier{},
		navigator: nopNavigator{},
		scheduler: TimerScheduler{},
		quizDelay: DefaultQuizDelay,
		log:       logging.Nop(),
		exitPath:  PathDashboard,
		now:       time.Now,
	}
}

// Option configures a Session or Player.
type Option func(*settings)

// WithNotifier sets the sink for drill feedback and summaries.
func WithNotifier(n Notifier) Option {
	return func(s *settings) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithNavigator sets where the session navigates when it terminates.
func WithNavigator(n Navigator) Option {
	return func(s *settings) {
		if n != nil {
			s.navigator = n
		}
	}
}

// WithScheduler sets the scheduler used for quiz auto-advance.
func WithScheduler(sch Scheduler) Option {
	return func(s *settings) {
		if sch != nil {
			s.scheduler = sch
		}
	}
}

// WithQuizDelay sets the auto-advance delay. Zero advances on answer.
func WithQuizDelay(d time.Duration) Option {
	return func(s *settings) {
		if d < 0 {
			d = 0
		}
		s.quizDelay = d
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCompletionHook registers a hook run on completion. Abort never runs it.
func WithCompletionHook(h CompletionHook) Option {
	return func(s *settings) { s.hook = h }
}

// WithExitPath overrides the navigation target used on completion and abort.
func WithExitPath(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.exitPath = path
		}
	}
}

// WithUser attaches the learner to the session's completion event.
func WithUser(u *User) Option {
	return func(s *settings) { s.user = u }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
