package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Daskott/people/server/logger"
	"github.com/Daskott/people/server/models"
	"github.com/pkg/errors"
)

const (
	DEFAULT_URL     = "https://3ji5haxzr9.execute-api.us-east-1.amazonaws.com/dev/caseYolo"
	DEFAULT_TIMEOUT = 30 * time.Second
)

var (
	ErrPayloadNotArray = errors.New("clientes payload is not an array")

	logg = logger.NewLogger()
)

// Store is the part of models.PersonStore the importer needs
type Store interface {
	DeleteAllAndResetIdentity(ctx context.Context) error
	UpsertByEmail(ctx context.Context, person *models.Person) (bool, error)
}

type Result struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Importer pulls people from the external API and upserts them by email.
type Importer struct {
	store  Store
	client *http.Client
	url    string
}

func NewImporter(store Store, url string, timeout time.Duration) *Importer {
	if url == "" {
		url = DEFAULT_URL
	}
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &Importer{
		store:  store,
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Seed clears the people table, resets ids and then imports everything from the source.
// A failure mid-way leaves whatever was inserted so far.
func (imp *Importer) Seed(ctx context.Context) (Result, error) {
	if err := imp.store.DeleteAllAndResetIdentity(ctx); err != nil {
		return Result{}, errors.Wrap(err, "seed: clearing people")
	}

	return imp.Import(ctx)
}

// Import fetches the source and upserts each record without clearing first
func (imp *Importer) Import(ctx context.Context) (Result, error) {
	records, err := imp.fetch(ctx)
	if err != nil {
		return Result{}, err
	}

	result := Result{}
	for _, record := range records {
		person := record.toPerson()

		inserted, err := imp.store.UpsertByEmail(ctx, &person)
		if err != nil {
			return result, errors.Wrapf(err, "import: upserting %s", person.Email)
		}

		if !inserted {
			result.Skipped++
			logg.Infof("Person with email %s already exists, skipping", person.Email)
			continue
		}
		result.Inserted++
	}

	logg.Infof("Imported %d people from %s (%d skipped)", result.Inserted, imp.url, result.Skipped)
	return result, nil
}

func (imp *Importer) fetch(ctx context.Context) ([]record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imp.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "import: building request")
	}

	resp, err := imp.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "import: fetching %s", imp.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("import: fetching %s: unexpected status %s", imp.url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "import: reading response")
	}

	return parsePayload(body)
}

// ---------------------------------------------------------------------------------//
// Payload
// --------------------------------------------------------------------------------//

// envelope is the outer response; Body holds the real payload as a JSON string
type envelope struct {
	Body string `json:"body"`
}

type payload struct {
	Clientes json.RawMessage `json:"clientes"`
}

type record struct {
	Nome     string `json:"Nome"`
	Email    string `json:"E-mail"`
	Telefone string `json:"Telefone"`
	Tipo     string `json:"Tipo"`
}

func (r record) toPerson() models.Person {
	return models.Person{
		Name:  r.Nome,
		Email: r.Email,
		Phone: r.Telefone,
		Type:  r.Tipo,
	}
}

func parsePayload(raw []byte) ([]record, error) {
	outer := envelope{}
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, errors.Wrap(err, "import: decoding response")
	}

	// nothing to import
	if outer.Body == "" {
		return []record{}, nil
	}

	inner := payload{}
	if err := json.Unmarshal([]byte(outer.Body), &inner); err != nil {
		return nil, errors.Wrap(err, "import: decoding body")
	}

	clientes := bytes.TrimSpace(inner.Clientes)
	if len(clientes) == 0 || clientes[0] != '[' {
		return nil, ErrPayloadNotArray
	}

	records := []record{}
	if err := json.Unmarshal(clientes, &records); err != nil {
		return nil, errors.Wrap(err, "import: decoding clientes")
	}

	return records, nil
}
