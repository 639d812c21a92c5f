package app

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/logging"
	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/rewards"
	"github.com/abhisek/prepsmart/internal/router"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/screens/deps"
	"github.com/abhisek/prepsmart/internal/screens/home"
	"github.com/abhisek/prepsmart/internal/screens/intro"
	"github.com/abhisek/prepsmart/internal/screens/login"
	"github.com/abhisek/prepsmart/internal/store"
	"github.com/abhisek/prepsmart/internal/ui/components"
	"github.com/abhisek/prepsmart/internal/ui/layout"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 3 * time.Second

// Options configures the TUI.
type Options struct {
	Catalog catalog.Catalog
	// Store may be nil; the app then runs without sign-in or history.
	Store     *store.Store
	Log       *logging.Logger
	QuizDelay time.Duration
	// StartModule opens this module's intro after launch.
	StartModule string
}

type toastExpiredMsg struct {
	ID int
}

type advanceMsg struct {
	TaskID int
}

type headerLoadedMsg struct {
	Learner string
	Points  int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   deps.Deps
	bridge *bridge
	sched  *player.ManualScheduler
	start  string

	toast   *components.Toast
	toastID int
	learner string
	points  int

	width  int
	height int
}

// newAppModel wires the player to the TUI and picks the root screen.
func newAppModel(opts Options) *AppModel {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}

	var profiles store.ProfileRepo
	var events store.EventRepo
	var snapshots store.SnapshotRepo
	if opts.Store != nil {
		profiles = opts.Store.ProfileRepo()
		events = opts.Store.EventRepo()
		snapshots = opts.Store.SnapshotRepo()
	}

	rw := rewards.NewService(events, snapshots, log)
	b := &bridge{}
	sched := player.NewManualScheduler()

	p := player.New(opts.Catalog, profileSessions{profiles: profiles},
		player.WithNotifier(b),
		player.WithNavigator(b),
		player.WithScheduler(sched),
		player.WithQuizDelay(opts.QuizDelay),
		player.WithLogger(log),
		player.WithCompletionHook(rw.Hook(context.Background())),
	)

	d := deps.Deps{
		Catalog:  opts.Catalog,
		Player:   p,
		Profiles: profiles,
		Events:   events,
		Rewards:  rw,
		Log:      log,
	}

	m := &AppModel{
		deps:   d,
		bridge: b,
		sched:  sched,
		start:  opts.StartModule,
	}
	m.router = router.New(m.rootScreen())
	return m
}

// rootScreen returns home for a signed-in learner and the sign-in gate
// otherwise.
func (m *AppModel) rootScreen() screen.Screen {
	p, err := m.deps.CurrentProfile(context.Background())
	if err != nil {
		m.deps.Logger().Warn("load profile failed", "error", err)
	}
	if p == nil && m.deps.Profiles != nil {
		return login.New(m.deps.Profiles, "student")
	}
	return home.New(m.deps)
}

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Root().Init(), m.loadHeader()}
	if m.start != "" {
		id := m.start
		m.start = ""
		cmds = append(cmds, func() tea.Msg {
			return router.PushScreenMsg{Screen: intro.New(m.deps.Player, id)}
		})
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok {
				return m, m.drain(h.HandleEscape())
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case screen.NotifyMsg:
		return m, m.showToast(components.Toast{Title: msg.Title, Body: msg.Body, Error: msg.Error})

	case toastExpiredMsg:
		if msg.ID == m.toastID {
			m.toast = nil
		}
		return m, nil

	case screen.NavigateMsg:
		return m, m.drain(m.navigate(msg.Path))

	case advanceMsg:
		m.sched.Fire(msg.TaskID)
		return m, m.drain(nil)

	case headerLoadedMsg:
		m.learner = msg.Learner
		m.points = msg.Points
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, m.drain(cmd)
}

// drain turns queued player effects and scheduled callbacks into commands.
func (m *AppModel) drain(cmd tea.Cmd) tea.Cmd {
	cmds := []tea.Cmd{cmd}

	notes, paths := m.bridge.take()
	for _, n := range notes {
		cmds = append(cmds, m.showToast(components.Toast{
			Title: n.Title,
			Body:  n.Body,
			Error: n.Tone == player.ToneError,
		}))
	}
	for _, p := range paths {
		cmds = append(cmds, m.navigate(p))
	}
	for _, task := range m.sched.TakeNew() {
		id := task.ID
		cmds = append(cmds, tea.Tick(task.Delay, func(time.Time) tea.Msg {
			return advanceMsg{TaskID: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) showToast(t components.Toast) tea.Cmd {
	m.toastID++
	m.toast = &t
	id := m.toastID
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{ID: id}
	})
}

// navigate maps a path onto the screen stack.
func (m *AppModel) navigate(path string) tea.Cmd {
	u, err := url.Parse(path)
	if err != nil {
		m.deps.Logger().Warn("bad navigation path", "path", path, "error", err)
		return nil
	}

	switch u.Path {
	case "/auth":
		m.learner, m.points = "", 0
		return m.router.Reset(login.New(m.deps.Profiles, login.RoleFromPath(path)))
	case player.PathDashboard:
		if _, ok := m.router.Root().(*home.HomeScreen); !ok {
			return tea.Batch(m.router.Reset(home.New(m.deps)), m.loadHeader())
		}
		m.router.PopToRoot()
		return tea.Batch(m.router.Update(screen.RefreshMsg{}), m.loadHeader())
	}

	m.deps.Logger().Warn("unknown navigation path", "path", path)
	return nil
}

func (m *AppModel) loadHeader() tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx := context.Background()
		p, err := d.CurrentProfile(ctx)
		if err != nil || p == nil {
			return headerLoadedMsg{}
		}
		totals, err := d.Rewards.Totals(ctx, p.ID)
		if err != nil {
			d.Logger().Warn("load totals failed", "error", err)
		}
		return headerLoadedMsg{Learner: p.Name, Points: totals.Points}
	}
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m *AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.Header{Title: title, Learner: m.learner, Points: m.points}.Render(m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	footer := layout.RenderFooter(layout.FooterHints(hints, m.router.Depth() > 1), m.width)
	contentHeight := layout.ContentHeight(header, footer, m.height)

	var content string
	if m.toast != nil {
		toast := lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.toast.View(m.width/2))
		toastHeight := lipgloss.Height(toast)
		content = toast + "\n" + m.router.View(m.width, max(contentHeight-toastHeight-1, 0))
	} else {
		content = m.router.View(m.width, contentHeight)
	}

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
