package ui

import (
	"strings"

	"github.com/Daskott/people/client"
	"github.com/Daskott/people/server/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	nameField = iota
	emailField
	phoneField
	typeField
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nome", "Email", "Telefone", "Tipo"}

// FormModel is the create/edit dialog. The type field cycles through models.KnownTypes
// while adding and is read-only while editing, since a PUT by id never changes it.
type FormModel struct {
	inputs    [typeField]textinput.Model
	typeIndex int
	focus     int

	// editingID is zero while adding a new person
	editingID uint
	// storedType is the type of the person being edited, as the API returned it
	storedType string
}

func NewFormModel(person *models.Person) FormModel {
	form := FormModel{typeIndex: -1}

	placeholders := [typeField]string{"Nome", "email@exemplo.com", client.PHONE_MASK}
	for i := range form.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 120
		input.Width = 40
		form.inputs[i] = input
	}
	form.inputs[phoneField].CharLimit = len(client.PHONE_MASK)

	if person != nil {
		form.editingID = person.ID
		form.storedType = person.Type
		form.inputs[nameField].SetValue(person.Name)
		form.inputs[emailField].SetValue(person.Email)
		form.inputs[phoneField].SetValue(person.Phone)
		for i := range form.inputs {
			form.inputs[i].CursorEnd()
		}
		for i, known := range models.KnownTypes {
			if strings.EqualFold(known, person.Type) {
				form.typeIndex = i
			}
		}
	}

	form.inputs[nameField].Focus()
	return form
}

func (f FormModel) IsEditing() bool {
	return f.editingID != 0
}

func (f FormModel) Type() string {
	if f.IsEditing() {
		return f.storedType
	}
	if f.typeIndex < 0 {
		return ""
	}
	return models.KnownTypes[f.typeIndex]
}

// Input is what gets POSTed for a new person
func (f FormModel) Input() models.PersonInput {
	return models.PersonInput{
		Name:  strings.TrimSpace(f.inputs[nameField].Value()),
		Email: strings.TrimSpace(f.inputs[emailField].Value()),
		Phone: f.inputs[phoneField].Value(),
		Type:  client.CapitalizeType(f.Type()),
	}
}

// Changes is what gets PUT for an existing person. Type can't be changed by id.
func (f FormModel) Changes() models.PersonUpdate {
	input := f.Input()
	return models.PersonUpdate{Name: &input.Name, Email: &input.Email, Phone: &input.Phone}
}

// Complete reports whether every field the request carries has a value,
// the same presence check the API does
func (f FormModel) Complete() bool {
	input := f.Input()
	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return false
	}
	return f.IsEditing() || input.Type != ""
}

func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return f.focusField((f.focus + 1) % fieldCount), nil
		case "shift+tab", "up":
			return f.focusField((f.focus + fieldCount - 1) % fieldCount), nil
		}

		if f.focus == typeField && !f.IsEditing() {
			switch msg.String() {
			case "right", "l", " ":
				f.typeIndex = (f.typeIndex + 1) % len(models.KnownTypes)
			case "left", "h":
				if f.typeIndex <= 0 {
					f.typeIndex = len(models.KnownTypes)
				}
				f.typeIndex--
			}
			return f, nil
		}
	}

	if f.focus == typeField {
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.focus == phoneField {
		phone := f.inputs[phoneField].Value()
		if formatted := client.FormatPhone(phone); formatted != phone {
			f.inputs[phoneField].SetValue(formatted)
			f.inputs[phoneField].CursorEnd()
		}
	}

	return f, cmd
}

func (f FormModel) View(styles Styles) string {
	var sb strings.Builder

	title := "Adicionar Pessoa"
	if f.IsEditing() {
		title = "Editar Pessoa"
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	for i := 0; i < fieldCount; i++ {
		label := styles.Label.Render(fieldLabels[i])
		if i == f.focus {
			label = styles.Selected.Render("> ") + label
		} else {
			label = "  " + label
		}

		value := ""
		if i == typeField {
			value = f.Type()
			if value == "" {
				value = styles.Muted.Render("Selecione um tipo")
			}
			if f.IsEditing() {
				value = styles.Muted.Render(value + " (somente leitura)")
			} else {
				value = "< " + value + " >"
			}
		} else {
			value = f.inputs[i].View()
		}

		sb.WriteString(label + " " + value + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("tab: next field • ←/→: type • enter: save • esc: cancel"))

	return styles.Form.Render(sb.String())
}

func (f FormModel) focusField(index int) FormModel {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}

	f.focus = index
	if index < typeField {
		f.inputs[index].Focus()
	}
	return f
}
