package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Daskott/people/server/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	people  []models.Person
	nextID  uint
	created []models.PersonInput
	updated map[uint]models.PersonUpdate
	deleted []uint
	err     error
}

func newFakeClient(people ...models.Person) *fakeClient {
	return &fakeClient{people: people, nextID: uint(len(people) + 1), updated: map[uint]models.PersonUpdate{}}
}

func (f *fakeClient) ListPeople(ctx context.Context) ([]models.Person, error) {
	return f.people, f.err
}

func (f *fakeClient) CreatePerson(ctx context.Context, input models.PersonInput) (*models.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)

	person := input.Person()
	person.ID = f.nextID
	person.CreatedAt = time.Now()
	f.nextID++
	return &person, nil
}

func (f *fakeClient) UpdatePerson(ctx context.Context, id uint, data models.PersonUpdate) (*models.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated[id] = data

	for _, person := range f.people {
		if person.ID == id {
			person.Name = *data.Name
			person.Email = *data.Email
			person.Phone = *data.Phone
			return &person, nil
		}
	}
	return nil, errors.New("404 Person not found")
}

func (f *fakeClient) DeletePerson(ctx context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func seedPeople() []models.Person {
	return []models.Person{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Ana", Email: "ana@x.com", Phone: "+55 11 99999-0000", Type: models.GUEST_TYPE},
		{BaseModel: models.BaseModel{ID: 2}, Name: "Bia", Email: "bia@x.com", Phone: "+55 11 98888-0000", Type: models.OWNER_TYPE},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and runs the returned command once, feeding its result back
func send(t *testing.T, m Model, msg tea.Msg) Model {
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		return m
	}

	result := cmd()
	if _, ok := result.(tea.QuitMsg); ok {
		return m
	}

	updated, _ = m.Update(result)
	return updated.(Model)
}

// typeText drops the returned commands, they only blink the cursor
func typeText(t *testing.T, m Model, text string) Model {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func loadedModel(t *testing.T, fake *fakeClient) Model {
	m := NewModel(fake)
	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestModelLoadsPeople(t *testing.T) {
	m := NewModel(newFakeClient(seedPeople()...))
	assert.Contains(t, m.View(), "Loading...")

	m = loadedModel(t, newFakeClient(seedPeople()...))
	view := m.View()
	assert.Contains(t, view, "Ana")
	assert.Contains(t, view, "Bia")
	assert.Len(t, m.Book().People(), 2)
}

func TestModelLoadFailureShowsError(t *testing.T) {
	fake := newFakeClient()
	fake.err = errors.New("connection refused")

	m := loadedModel(t, fake)
	assert.Equal(t, "connection refused", m.Book().Err())
	assert.Contains(t, m.View(), "connection refused")
}

func TestModelFilterCycles(t *testing.T) {
	m := loadedModel(t, newFakeClient(seedPeople()...))

	m = send(t, m, key("f"))
	assert.Equal(t, "hóspede", m.Book().FilterType())
	require.Len(t, m.Book().Filtered(), 1)
	assert.Equal(t, "Ana", m.Book().Filtered()[0].Name)

	m = send(t, m, key("f"))
	require.Len(t, m.Book().Filtered(), 1)
	assert.Equal(t, "Bia", m.Book().Filtered()[0].Name)

	for i := 0; i < len(filters)-2; i++ {
		m = send(t, m, key("f"))
	}
	assert.Equal(t, "", m.Book().FilterType())
	assert.Len(t, m.Book().Filtered(), 2)
}

func TestModelCreatesPerson(t *testing.T) {
	fake := newFakeClient(seedPeople()...)
	m := loadedModel(t, fake)

	m = send(t, m, key("a"))
	require.True(t, m.formOpen)
	assert.Contains(t, m.View(), "Adicionar Pessoa")

	m = typeText(t, m, "Caio")
	m = send(t, m, key("tab"))
	m = typeText(t, m, "caio@x.com")
	m = send(t, m, key("tab"))
	m = typeText(t, m, "5521977776666")
	m = send(t, m, key("tab"))
	m = send(t, m, key("right"))
	m = send(t, m, key("right"))
	m = send(t, m, key("enter"))

	require.Len(t, fake.created, 1)
	assert.Equal(t, models.PersonInput{Name: "Caio", Email: "caio@x.com", Phone: "+55 21 97777-6666", Type: models.OWNER_TYPE}, fake.created[0])
	assert.False(t, m.formOpen)
	assert.Len(t, m.Book().People(), 3)
	assert.Contains(t, m.View(), "Caio")
}

func TestModelIncompleteFormIsNotSent(t *testing.T) {
	fake := newFakeClient()
	m := loadedModel(t, fake)

	m = send(t, m, key("a"))
	m = typeText(t, m, "Caio")
	m = send(t, m, key("enter"))

	assert.Empty(t, fake.created)
	assert.True(t, m.formOpen)
	assert.Equal(t, "all fields are required", m.Book().Err())

	m = send(t, m, key("esc"))
	assert.False(t, m.formOpen)
}

func TestModelEditsSelectedPerson(t *testing.T) {
	fake := newFakeClient(seedPeople()...)
	m := loadedModel(t, fake)

	m = send(t, m, key("down"))
	m = send(t, m, key("e"))
	require.True(t, m.formOpen)
	assert.Equal(t, uint(2), m.form.editingID)
	assert.Equal(t, models.OWNER_TYPE, m.form.Type())
	assert.Contains(t, m.View(), "Editar Pessoa")

	m = typeText(t, m, " Lima")
	m = send(t, m, key("enter"))

	require.Contains(t, fake.updated, uint(2))
	assert.Equal(t, "Bia Lima", *fake.updated[2].Name)
	assert.False(t, m.formOpen)
	assert.Equal(t, "Bia Lima", m.Book().People()[1].Name)
}

func TestModelEditsPersonWithUnlistedType(t *testing.T) {
	guest := models.Person{BaseModel: models.BaseModel{ID: 3}, Name: "Ana", Email: "ana@x.com", Phone: "+55 11 99999-0000", Type: "guest"}
	fake := newFakeClient(guest)
	m := loadedModel(t, fake)

	m = send(t, m, key("e"))
	require.True(t, m.formOpen)
	assert.Equal(t, "guest", m.form.Type())
	assert.True(t, m.form.Complete())

	m = typeText(t, m, " Maria")
	m = send(t, m, key("enter"))

	require.Contains(t, fake.updated, uint(3))
	assert.Equal(t, "Ana Maria", *fake.updated[3].Name)
	assert.Empty(t, m.Book().Err())
	assert.False(t, m.formOpen)
	assert.Equal(t, "guest", m.Book().People()[0].Type)
}

func TestModelEditKeepsTypeReadOnly(t *testing.T) {
	fake := newFakeClient(seedPeople()...)
	m := loadedModel(t, fake)

	m = send(t, m, key("e"))
	for i := 0; i < 3; i++ {
		m = send(t, m, key("tab"))
	}
	m = send(t, m, key("right"))
	m = send(t, m, key("l"))
	assert.Equal(t, models.GUEST_TYPE, m.form.Type())
	assert.Contains(t, m.View(), "somente leitura")
}

func TestModelDeletesSelectedPerson(t *testing.T) {
	fake := newFakeClient(seedPeople()...)
	m := loadedModel(t, fake)

	m = send(t, m, key("d"))
	assert.Equal(t, []uint{1}, fake.deleted)
	require.Len(t, m.Book().People(), 1)
	assert.Equal(t, "Bia", m.Book().People()[0].Name)
	assert.False(t, strings.Contains(m.View(), "ana@x.com"))
}

func TestModelDeleteFailureKeepsPerson(t *testing.T) {
	fake := newFakeClient(seedPeople()...)
	m := loadedModel(t, fake)
	fake.err = errors.New("500 database is locked")

	m = send(t, m, key("d"))
	assert.Len(t, m.Book().People(), 2)
	assert.Equal(t, "500 database is locked", m.Book().Err())
}

func TestModelQuits(t *testing.T) {
	m := loadedModel(t, newFakeClient())

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
