package client

import (
	"strings"
	"unicode"

	"github.com/Daskott/people/server/models"
	"github.com/Daskott/people/utils"
)

const PHONE_MASK = "+99 99 99999-9999"

// Book holds the people shown by a client: the full list plus the view filtered by type.
// It never talks to the API, callers feed it the results of Client calls.
type Book struct {
	people     []models.Person
	filtered   []models.Person
	filterType string
	err        string
}

func NewBook() *Book {
	return &Book{people: []models.Person{}, filtered: []models.Person{}}
}

func (b *Book) People() []models.Person {
	return b.people
}

func (b *Book) Filtered() []models.Person {
	return b.filtered
}

func (b *Book) FilterType() string {
	return b.filterType
}

// Err is the last failure as shown to the user, empty when there is none
func (b *Book) Err() string {
	return b.err
}

func (b *Book) Load(people []models.Person) {
	b.people = append([]models.Person{}, people...)
	b.filtered = append([]models.Person{}, people...)
}

func (b *Book) Fail(err error) {
	if err == nil {
		b.err = ""
		return
	}
	b.err = err.Error()
}

func (b *Book) ClearError() {
	b.err = ""
}

// FilterByType narrows the view to people whose type contains personType, ignoring case.
// An empty personType shows everyone.
func (b *Book) FilterByType(personType string) {
	b.filterType = personType
	if personType == "" {
		b.filtered = append([]models.Person{}, b.people...)
		return
	}

	filtered := []models.Person{}
	for _, person := range b.people {
		if utils.ContainsFold(person.Type, personType) {
			filtered = append(filtered, person)
		}
	}
	b.filtered = filtered
}

// Added appends person to both lists, whether or not it matches the current filter
func (b *Book) Added(person models.Person) {
	b.people = append(b.people, person)
	b.filtered = append(b.filtered, person)
}

func (b *Book) Replaced(person models.Person) {
	replace(b.people, person)
	replace(b.filtered, person)
}

func (b *Book) Removed(id uint) {
	b.people = remove(b.people, id)
	b.filtered = remove(b.filtered, id)
}

// CapitalizeType upper-cases the first letter of a type label, e.g. "hóspede" -> "Hóspede"
func CapitalizeType(personType string) string {
	return utils.CapitalizeFirst(personType)
}

// FormatPhone lays the digits of phone over PHONE_MASK, stopping where the digits run out
func FormatPhone(phone string) string {
	digits := []rune{}
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	var sb strings.Builder
	next := 0
	for _, m := range PHONE_MASK {
		if next == len(digits) {
			break
		}

		if m == '9' {
			sb.WriteRune(digits[next])
			next++
			continue
		}
		sb.WriteRune(m)
	}

	return sb.String()
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func replace(people []models.Person, person models.Person) {
	for i := range people {
		if people[i].ID == person.ID {
			people[i] = person
		}
	}
}

func remove(people []models.Person, id uint) []models.Person {
	kept := []models.Person{}
	for _, person := range people {
		if person.ID != id {
			kept = append(kept, person)
		}
	}
	return kept
}
