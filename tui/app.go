// Package tui is the Bubble Tea front end of the sales dashboard.
package tui

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spektr-org/salesdesk/config"
	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/dashboard"
	"github.com/spektr-org/salesdesk/engine"
	"github.com/spektr-org/salesdesk/logger"
)

// Model is the root Bubble Tea model. It owns the dataset; every list page
// derives its view from it on each change. Update never writes through
// state an earlier Model shares: lists and data are replaced, not edited.
type Model struct {
	cfg  *config.Config
	log  *logger.Logger
	keys KeyMap
	help help.Model

	data  *crm.Dataset
	lists map[string]listModel
	page  dashboard.Page
	// inventory is true when the quotation page shows the screen picker.
	inventory bool
	draft     crm.Draft

	search    textinput.Model
	searching bool
	add       taskForm
	adding    bool

	toasts     dashboard.Toasts
	generating bool

	err    error
	width  int
	height int
}

// New builds the dashboard over data. Extra metrics from cfg are compiled
// up front so a bad expression fails before the program starts.
func New(cfg *config.Config, data *crm.Dataset, log *logger.Logger) (Model, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Nop()
	}

	m := Model{
		cfg:   cfg,
		log:   log.WithComponent("tui"),
		keys:  DefaultKeyMap(),
		help:  help.New(),
		data:  data,
		lists: make(map[string]listModel, len(dashboard.Lists)),
		page:  dashboard.Resolve(cfg.UI.StartPage),
	}

	for _, l := range dashboard.Lists {
		extra, err := dashboard.ExtraMetrics(cfg, l, data)
		if err != nil {
			return Model{}, err
		}
		lm := newListModel(l, extra)
		if err := lm.refresh(data, m.engineOpts()...); err != nil {
			return Model{}, err
		}
		m.lists[l.Name] = lm
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search..."
	m.search.Prompt = "/ "
	m.search.CharLimit = 64

	m.add = newTaskForm()

	return m, nil
}

// Run starts the program and blocks until it exits or ctx is done.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) engineOpts() []engine.Option {
	return []engine.Option{engine.WithLogger(m.log.Zap())}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case toastExpiredMsg:
		m.toasts = m.toasts.Dismiss(msg.id)
		return m, nil

	case reportReadyMsg:
		m.generating = false
		cmd := m.pushToast(dashboard.ReportReadyMessage, dashboard.ToastSuccess)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.adding:
			return m.updateAdd(msg)
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	lm, ok := m.active()

	// Detail view owns the arrow keys.
	if ok && lm.detail {
		switch {
		case key.Matches(msg, m.keys.Back):
			lm.detail = false
		case key.Matches(msg, m.keys.Next):
			lm.step(engine.Next)
		case key.Matches(msg, m.keys.Prev):
			lm.step(engine.Previous)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m.put(lm), nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Page):
		n, _ := strconv.Atoi(msg.String())
		return m.goTo(dashboard.Pages[n-1]), nil
	case key.Matches(msg, m.keys.NextPage):
		return m.goTo(dashboard.Step(m.page.Path, 1)), nil
	case key.Matches(msg, m.keys.PrevPage):
		return m.goTo(dashboard.Step(m.page.Path, -1)), nil
	case key.Matches(msg, m.keys.AddTask) && (m.page.Path == "/" || m.page.List == dashboard.ListTasks):
		var cmd tea.Cmd
		m.adding = true
		m.add, cmd = m.add.open(m.page.Path == "/")
		return m, cmd
	case key.Matches(msg, m.keys.Report) && m.page.Path == "/":
		return m.generateReport()
	}

	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.SubList) && m.page.Path == "/quotation":
		m.inventory = !m.inventory
		return m, nil
	case key.Matches(msg, m.keys.Up):
		lm.move(-1)
	case key.Matches(msg, m.keys.Down):
		lm.move(1)
	case key.Matches(msg, m.keys.Open):
		lm.openDetail()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(lm.state.Query)
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Facet):
		lm.nextFacet()
	case key.Matches(msg, m.keys.OptLeft):
		lm.moveOption(-1)
	case key.Matches(msg, m.keys.OptRight):
		lm.moveOption(1)
	case key.Matches(msg, m.keys.Toggle):
		lm.toggleOption()
		m.refresh(&lm)
	case key.Matches(msg, m.keys.Column):
		lm.nextColumn()
	case key.Matches(msg, m.keys.Sort):
		lm.sortFocused()
		m.refresh(&lm)
	case key.Matches(msg, m.keys.FloorUp):
		lm.stepFloor(1)
		m.refresh(&lm)
	case key.Matches(msg, m.keys.FloorDn):
		lm.stepFloor(-1)
		m.refresh(&lm)
	case key.Matches(msg, m.keys.Clear):
		lm.clear()
		m.refresh(&lm)
	case key.Matches(msg, m.keys.Complete) && lm.list.Name == dashboard.ListTasks:
		if id, ok := lm.cursorID(); ok {
			m = m.withTasks(crm.ToggleTask(m.data.Tasks, id))
			m.refresh(&lm)
		}
	case key.Matches(msg, m.keys.Draft) && lm.list.Name == dashboard.ListScreens:
		return m.addToDraft(lm)
	}
	return m.put(lm), nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if lm, ok := m.active(); ok && m.search.Value() != lm.state.Query {
		lm.state = lm.state.WithQuery(m.search.Value())
		lm.cursor = 0
		m.refresh(&lm)
		m = m.put(lm)
	}
	return m, cmd
}

// updateAdd drives the add-task modal. The quick variant needs a summary and
// closes without creating anything when it is empty; the full form fills
// blank fields with defaults.
func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.add = m.add.close()
		return m, nil
	case "enter":
		m.adding = false
		m.add = m.add.close()
		d := m.add.draft()
		if m.add.quick && d.Title == "" {
			return m, nil
		}
		tasks, task := crm.AddTask(m.data.Tasks, d)
		m = m.withTasks(tasks)
		m.log.Infow("task created", "id", task.ID, "title", task.Title, "type", task.Type)
		lm := m.lists[dashboard.ListTasks]
		m.refresh(&lm)
		m = m.put(lm).goTo(dashboard.Resolve("/tasks"))
		cmd := m.pushToast(dashboard.TaskCreatedMessage(task.Title), dashboard.ToastInfo)
		return m, cmd
	}

	var cmd tea.Cmd
	m.add, cmd = m.add.update(msg)
	return m, cmd
}

func (m Model) generateReport() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	m.generating = true
	return m, tea.Tick(m.cfg.UI.ReportDelay.D(), func(time.Time) tea.Msg { return reportReadyMsg{} })
}

func (m Model) addToDraft(lm listModel) (tea.Model, tea.Cmd) {
	before := len(m.draft.Screens)
	m.draft = m.draft.AddScreens(engine.Materialize(m.data.Screens, lm.view()))
	added := len(m.draft.Screens) - before
	msg := fmt.Sprintf("%d screens added to quotation (%s)", added, engine.FormatINR(m.draft.Total()))
	cmd := m.pushToast(msg, dashboard.ToastInfo)
	return m, cmd
}

// pushToast queues a toast and schedules its expiry.
func (m *Model) pushToast(message string, kind dashboard.ToastKind) tea.Cmd {
	var id string
	m.toasts, id = m.toasts.Push(message, kind)
	return tea.Tick(m.cfg.UI.ToastTimeout.D(), func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m Model) goTo(p dashboard.Page) Model {
	m.page = p
	if p.Path != "/quotation" {
		m.inventory = false
	}
	return m
}

// active returns a copy of the list shown on the current page, if any.
func (m Model) active() (listModel, bool) {
	name := m.page.List
	if m.inventory {
		name = dashboard.ListScreens
	}
	lm, ok := m.lists[name]
	return lm, ok
}

// put returns m with lm stored in a fresh copy of the list map.
func (m Model) put(lm listModel) Model {
	lists := maps.Clone(m.lists)
	lists[lm.list.Name] = lm
	m.lists = lists
	return m
}

// withTasks returns m over a copy of the dataset holding tasks.
func (m Model) withTasks(tasks []crm.Task) Model {
	d := *m.data
	d.Tasks = tasks
	m.data = &d
	return m
}

// refresh re-derives lm, which must be a copy owned by the caller.
func (m *Model) refresh(lm *listModel) {
	if err := lm.refresh(m.data, m.engineOpts()...); err != nil {
		m.log.Warnw("list refresh failed", "list", lm.list.Name, "error", err)
		m.err = err
	}
}

// ============================================================================
// ACCESSORS (for tests)
// ============================================================================

// Page returns the current page.
func (m Model) Page() dashboard.Page { return m.page }

// State returns the UI state of a list.
func (m Model) State(list string) dashboard.ListState {
	if lm, ok := m.lists[list]; ok {
		return lm.state
	}
	return dashboard.ListState{}
}

// Toasts returns the visible toasts.
func (m Model) Toasts() dashboard.Toasts { return m.toasts }

// Data returns the dataset.
func (m Model) Data() *crm.Dataset { return m.data }
