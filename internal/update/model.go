package update

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

// Mode selects which component receives key presses.
type Mode string

const (
	ModeList          Mode = "list"
	ModeForm          Mode = "form"
	ModeSearch        Mode = "search"
	ModePalette       Mode = "palette"
	ModeConfirmDelete Mode = "confirm_delete"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Options struct {
	Context         context.Context
	Logger          *log.Logger
	Categories      []string
	DefaultCategory model.Category
	DefaultPriority model.Priority
	Sort            query.SortMode
}

type Model struct {
	Mode        Mode
	Params      query.Params
	Visible     []model.Task
	SelectedID  string
	DeleteID    string
	Status      StatusBar
	HelpVisible bool
	Quitting    bool
	LastError   error

	store           *store.Store
	ctx             context.Context
	logger          *log.Logger
	categories      []string
	defaultCategory model.Category
	defaultPriority model.Priority
	keys            keyMap
	form            formState
	statusSeq       int

	// Bubble components
	taskList     list.Model
	searchInput  textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	details      viewport.Model
}

// ClearStatusMsg clears the status bar if no newer status was set since
// the one numbered Seq.
type ClearStatusMsg struct {
	Seq int
}

type AppErrorMsg struct {
	Err error
}

// ReloadMsg asks the model to re-read the backend.
type ReloadMsg struct{}

type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Title }

type taskDelegate struct{}

func (taskDelegate) Height() int                             { return 1 }
func (taskDelegate) Spacing() int                            { return 0 }
func (taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, views.RenderTaskRow(index+1, it.task, index == m.Index()))
}

func NewModel(st *store.Store, opts Options) Model {
	m := Model{
		Mode:            ModeList,
		Params:          query.DefaultParams(),
		store:           st,
		ctx:             opts.Context,
		logger:          opts.Logger,
		categories:      opts.Categories,
		defaultCategory: opts.DefaultCategory,
		defaultPriority: opts.DefaultPriority,
		keys:            defaultKeyMap(),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if len(m.categories) == 0 {
		m.categories = []string{string(model.CategoryPersonal), string(model.CategoryWork)}
	}
	if m.defaultCategory == "" {
		m.defaultCategory = model.Category(m.categories[0])
	}
	if !m.defaultPriority.IsValid() {
		m.defaultPriority = model.PriorityMedium
	}
	if opts.Sort.IsValid() {
		m.Params.Sort = opts.Sort
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, taskDelegate{}, 62, 14)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetShowStatusBar(false)
	m.taskList.SetFilteringEnabled(false)

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "> "
	m.searchInput.Placeholder = "Search tasks..."
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 56

	m.form = newFormState()
	m.helpModel = help.New()
	m.details = viewport.New(38, 12)
}

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	for _, t := range m.Visible {
		if t.ID == m.SelectedID {
			return t, true
		}
	}
	return model.Task{}, false
}
