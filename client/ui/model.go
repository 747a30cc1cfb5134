package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Daskott/people/client"
	"github.com/Daskott/people/server/models"
	tea "github.com/charmbracelet/bubbletea"
)

// PeopleClient is the part of client.Client the UI calls
type PeopleClient interface {
	ListPeople(ctx context.Context) ([]models.Person, error)
	CreatePerson(ctx context.Context, input models.PersonInput) (*models.Person, error)
	UpdatePerson(ctx context.Context, id uint, data models.PersonUpdate) (*models.Person, error)
	DeletePerson(ctx context.Context, id uint) error
}

var _ PeopleClient = (*client.Client)(nil)

// filters are matched as substrings against the type, so lower case is enough
var filters = []string{"", "hóspede", "proprietário", "operador", "fornecedor"}

type peopleLoadedMsg struct {
	people []models.Person
	err    error
}

type personCreatedMsg struct {
	person *models.Person
	err    error
}

type personUpdatedMsg struct {
	person *models.Person
	err    error
}

type personDeletedMsg struct {
	id  uint
	err error
}

// Model is the people list with its filter and the create/edit form on top.
// Requests run inside commands; the book is only touched in Update.
type Model struct {
	client PeopleClient
	book   *client.Book
	styles Styles

	loaded      bool
	cursor      int
	filterIndex int

	form     FormModel
	formOpen bool

	width  int
	height int
}

func NewModel(peopleClient PeopleClient) Model {
	return Model{
		client: peopleClient,
		book:   client.NewBook(),
		styles: DefaultStyles(),
	}
}

func (m Model) Book() *client.Book {
	return m.book
}

func (m Model) Init() tea.Cmd {
	return m.loadPeople()
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case peopleLoadedMsg:
		if msg.err != nil {
			m.book.Fail(msg.err)
			return m, nil
		}
		m.loaded = true
		m.book.ClearError()
		m.book.Load(msg.people)
		m.book.FilterByType(filters[m.filterIndex])
		m.clampCursor()
		return m, nil

	case personCreatedMsg:
		if msg.err != nil {
			m.book.Fail(msg.err)
			return m, nil
		}
		m.book.ClearError()
		m.book.Added(*msg.person)
		m.formOpen = false
		return m, nil

	case personUpdatedMsg:
		if msg.err != nil {
			m.book.Fail(msg.err)
			return m, nil
		}
		m.book.ClearError()
		m.book.Replaced(*msg.person)
		m.formOpen = false
		return m, nil

	case personDeletedMsg:
		if msg.err != nil {
			m.book.Fail(msg.err)
			return m, nil
		}
		m.book.ClearError()
		m.book.Removed(msg.id)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.formOpen {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	if m.formOpen {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	people := m.book.Filtered()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(people)-1 {
			m.cursor++
		}
	case "f":
		m.filterIndex = (m.filterIndex + 1) % len(filters)
		m.book.FilterByType(filters[m.filterIndex])
		m.cursor = 0
	case "r":
		return m, m.loadPeople()
	case "a":
		m.form = NewFormModel(nil)
		m.formOpen = true
	case "e", "enter":
		if len(people) > 0 {
			selected := people[m.cursor]
			m.form = NewFormModel(&selected)
			m.formOpen = true
		}
	case "d", "delete":
		if len(people) > 0 {
			return m, m.deletePerson(people[m.cursor].ID)
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.formOpen = false
		return m, nil
	case "enter":
		if !m.form.Complete() {
			m.book.Fail(fmt.Errorf("all fields are required"))
			return m, nil
		}
		if m.form.IsEditing() {
			return m, m.updatePerson(m.form.editingID, m.form.Changes())
		}
		return m, m.createPerson(m.form.Input())
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Pessoas"))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Muted.Render("filtro: " + filterLabel(filters[m.filterIndex])))
	sb.WriteString("\n\n")

	if err := m.book.Err(); err != "" {
		sb.WriteString(m.styles.Error.Render(err))
		sb.WriteString("\n\n")
	}

	if m.formOpen {
		sb.WriteString(m.form.View(m.styles))
		return sb.String()
	}

	if !m.loaded {
		sb.WriteString("Loading...")
		return sb.String()
	}

	people := m.book.Filtered()
	if len(people) == 0 {
		sb.WriteString(m.styles.Muted.Render("Nenhuma pessoa encontrada"))
	}

	for i, person := range people {
		line := fmt.Sprintf("%-24s %-28s %-18s %s", person.Name, person.Email, person.Phone, person.Type)
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("a: add • e: edit • d: delete • f: filter • r: reload • q: quit"))

	return sb.String()
}

// ---------------------------------------------------------------------------------//
// Commands
// --------------------------------------------------------------------------------//

func (m Model) loadPeople() tea.Cmd {
	return func() tea.Msg {
		people, err := m.client.ListPeople(context.Background())
		return peopleLoadedMsg{people: people, err: err}
	}
}

func (m Model) createPerson(input models.PersonInput) tea.Cmd {
	return func() tea.Msg {
		person, err := m.client.CreatePerson(context.Background(), input)
		return personCreatedMsg{person: person, err: err}
	}
}

func (m Model) updatePerson(id uint, data models.PersonUpdate) tea.Cmd {
	return func() tea.Msg {
		person, err := m.client.UpdatePerson(context.Background(), id, data)
		return personUpdatedMsg{person: person, err: err}
	}
}

func (m Model) deletePerson(id uint) tea.Cmd {
	return func() tea.Msg {
		return personDeletedMsg{id: id, err: m.client.DeletePerson(context.Background(), id)}
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (m *Model) clampCursor() {
	if m.cursor >= len(m.book.Filtered()) {
		m.cursor = len(m.book.Filtered()) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func filterLabel(filter string) string {
	if filter == "" {
		return "todos"
	}
	return client.CapitalizeType(filter)
}
