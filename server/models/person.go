package models

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const PeopleTable = "people"

// Labels the client offers for a person's type. The column itself is free text.
const (
	GUEST_TYPE    = "Hóspede"
	OWNER_TYPE    = "Proprietário"
	OPERATOR_TYPE = "Operador"
	SUPPLIER_TYPE = "Fornecedor"
)

var KnownTypes = []string{GUEST_TYPE, OWNER_TYPE, OPERATOR_TYPE, SUPPLIER_TYPE}

// insert unless a row with the same email exists, as one statement
var upsertByEmailSQL = fmt.Sprintf(`INSERT INTO %[1]s (name, email, phone, type)
SELECT CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS TEXT)
WHERE NOT EXISTS (SELECT 1 FROM %[1]s WHERE email = ?)`, PeopleTable)

type Person struct {
	BaseModel
	Name  string `json:"name" gorm:"not null"`
	Email string `json:"email" gorm:"not null;index"`
	Phone string `json:"phone" gorm:"not null"`
	Type  string `json:"type" gorm:"not null;index"`
}

func (Person) TableName() string {
	return PeopleTable
}

// PersonInput is the body accepted when creating a person. Any id or createdAt sent along is ignored.
type PersonInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Type  string `json:"type" validate:"required"`
}

func (in PersonInput) Person() Person {
	return Person{Name: in.Name, Email: in.Email, Phone: in.Phone, Type: in.Type}
}

// PersonUpdate holds the fields a partial update may change. Nil fields are left untouched.
type PersonUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (u PersonUpdate) IsEmpty() bool {
	return len(u.columns()) == 0
}

func (u PersonUpdate) columns() map[string]interface{} {
	data := make(map[string]interface{})
	if u.Name != nil {
		data["name"] = *u.Name
	}
	if u.Email != nil {
		data["email"] = *u.Email
	}
	if u.Phone != nil {
		data["phone"] = *u.Phone
	}
	return data
}

// PersonStore is the only way the rest of the app touches the people table.
type PersonStore struct {
	db *gorm.DB
}

func NewPersonStore(db *gorm.DB) *PersonStore {
	return &PersonStore{db: db}
}

func (s *PersonStore) FindAll(ctx context.Context) ([]Person, error) {
	people := []Person{}
	err := s.db.WithContext(ctx).Order("id").Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	return people, nil
}

// FindByType returns the people whose type matches exactly (case-sensitive)
func (s *PersonStore) FindByType(ctx context.Context, personType string) ([]Person, error) {
	people := []Person{}
	err := s.db.WithContext(ctx).Scopes(ofType(personType)).Order("id").Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list people of type %q: %w", personType, err)
	}

	return people, nil
}

func (s *PersonStore) FindByID(ctx context.Context, id uint) (*Person, error) {
	person := Person{}
	err := s.db.WithContext(ctx).First(&person, id).Error
	if err != nil {
		return nil, notFound(fmt.Errorf("failed to find person %d: %w", id, err))
	}

	return &person, nil
}

func (s *PersonStore) FindByEmail(ctx context.Context, email string) (*Person, error) {
	person := Person{}
	err := s.db.WithContext(ctx).Order("id").First(&person, "email = ?", email).Error
	if err != nil {
		return nil, notFound(fmt.Errorf("failed to find person %s: %w", email, err))
	}

	return &person, nil
}

func (s *PersonStore) Create(ctx context.Context, person *Person) error {
	person.ID = 0
	person.CreatedAt = time.Now()

	err := s.db.WithContext(ctx).Create(person).Error
	if err != nil {
		return fmt.Errorf("failed to create person %s: %w", person.Email, err)
	}

	return nil
}

// UpdateByID applies a partial update and returns the record as stored afterwards
func (s *PersonStore) UpdateByID(ctx context.Context, id uint, data PersonUpdate) (*Person, error) {
	if data.IsEmpty() {
		return s.FindByID(ctx, id)
	}

	res := s.db.WithContext(ctx).Model(&Person{}).Scopes(byID(id)).Updates(data.columns())
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update person %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, notFound(gorm.ErrRecordNotFound)
	}

	return s.FindByID(ctx, id)
}

// UpdateByType applies the same partial update to every person of the given type
// and returns how many records matched.
func (s *PersonStore) UpdateByType(ctx context.Context, personType string, data PersonUpdate) (int64, error) {
	if data.IsEmpty() {
		var count int64
		err := s.db.WithContext(ctx).Model(&Person{}).Scopes(ofType(personType)).Count(&count).Error
		return count, err
	}

	res := s.db.WithContext(ctx).Model(&Person{}).Scopes(ofType(personType)).Updates(data.columns())
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update people of type %q: %w", personType, res.Error)
	}

	return res.RowsAffected, nil
}

func (s *PersonStore) DeleteByID(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Person{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete person %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}

	return nil
}

func (s *PersonStore) DeleteByType(ctx context.Context, personType string) (int64, error) {
	res := s.db.WithContext(ctx).Scopes(ofType(personType)).Delete(&Person{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete people of type %q: %w", personType, res.Error)
	}

	return res.RowsAffected, nil
}

// DeleteAllAndResetIdentity empties the table and restarts the id sequence at 1.
func (s *PersonStore) DeleteAllAndResetIdentity(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	if db.Dialector.Name() == "postgres" {
		err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", PeopleTable)).Error
		if err != nil {
			return fmt.Errorf("failed to truncate %s: %w", PeopleTable, err)
		}
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s", PeopleTable)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", PeopleTable, err)
		}

		// sqlite keeps AUTOINCREMENT counters here
		if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", PeopleTable).Error; err != nil {
			return fmt.Errorf("failed to reset %s identity: %w", PeopleTable, err)
		}
		return nil
	})
}

// UpsertByEmail inserts the person unless one with the same email already exists.
// It reports whether a row was inserted.
func (s *PersonStore) UpsertByEmail(ctx context.Context, person *Person) (bool, error) {
	res := s.db.WithContext(ctx).Exec(upsertByEmailSQL,
		person.Name, person.Email, person.Phone, person.Type, person.Email)
	if res.Error != nil {
		return false, fmt.Errorf("failed to upsert person %s: %w", person.Email, res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (s *PersonStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Person{}).Count(&count).Error
	return count, err
}
