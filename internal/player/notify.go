package player

import "context"

// Navigation targets used by the player.
const (
	PathSignIn    = "/auth?role=student"
	PathDashboard = "/student-dashboard"
)

// Tone selects how a notification is presented.
type Tone int

const (
	ToneInfo Tone = iota
	ToneError
)

// Notification is a transient message for the learner.
type Notification struct {
	Title string
	Body  string
	Tone  Tone
}

// Notifier shows transient messages. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Navigator moves the host out of the player.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }

// User is the signed-in learner.
type User struct {
	ID   string
	Name string
	Role string
}

// SessionProvider exposes the current learner. A nil user with a nil error
// means nobody is signed in.
type SessionProvider interface {
	CurrentUser(ctx context.Context) (*User, error)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

type nopNavigator struct{}

func (nopNavigator) NavigateTo(string) {}
