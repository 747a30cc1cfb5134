package importer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Daskott/people/server/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *models.PersonStore {
	db, err := models.InitializeTestDb()
	require.Nil(t, err)

	return models.NewPersonStore(db)
}

// sourceServer serves body wrapped the way the upstream API does: {"body": "<json string>"}
func sourceServer(t *testing.T, status int, innerBody string) *httptest.Server {
	outer, err := json.Marshal(map[string]string{"body": innerBody})
	require.Nil(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(status)
		rw.Write(outer)
	}))
	t.Cleanup(srv.Close)

	return srv
}

const twoClientesSameEmail = `{"clientes": [
	{"Nome": "Ana", "E-mail": "ana@x.com", "Telefone": "+55 11 99999-0000", "Tipo": "Hóspede"},
	{"Nome": "Bia", "E-mail": "bia@x.com", "Telefone": "+55 11 98888-0000", "Tipo": "Operador"},
	{"Nome": "Ana Clone", "E-mail": "ana@x.com", "Telefone": "+55 11 97777-0000", "Tipo": "Fornecedor"}
]}`

func TestSeedRenamesFieldsAndSkipsDuplicateEmails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	srv := sourceServer(t, http.StatusOK, twoClientesSameEmail)

	result, err := NewImporter(store, srv.URL, 0).Seed(ctx)
	require.Nil(t, err)
	assert.Equal(t, Result{Inserted: 2, Skipped: 1}, result)

	ana, err := store.FindByEmail(ctx, "ana@x.com")
	require.Nil(t, err)
	assert.Equal(t, "Ana", ana.Name, "first record with an email wins")
	assert.Equal(t, "+55 11 99999-0000", ana.Phone)
	assert.Equal(t, models.GUEST_TYPE, ana.Type)
	assert.EqualValues(t, 1, ana.ID)
}

func TestSeedClearsExistingRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.Nil(t, store.Create(ctx, &models.Person{Name: "Old", Email: "old@x.com", Phone: "1", Type: "Operador"}))

	srv := sourceServer(t, http.StatusOK, twoClientesSameEmail)
	_, err := NewImporter(store, srv.URL, 0).Seed(ctx)
	require.Nil(t, err)

	_, err = store.FindByEmail(ctx, "old@x.com")
	assert.True(t, errors.Is(err, models.ErrPersonNotFound))

	count, err := store.Count(ctx)
	assert.Nil(t, err)
	assert.EqualValues(t, 2, count)
}

func TestImportKeepsExistingRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.Nil(t, store.Create(ctx, &models.Person{Name: "Ana Original", Email: "ana@x.com", Phone: "1", Type: "Operador"}))

	srv := sourceServer(t, http.StatusOK, twoClientesSameEmail)
	result, err := NewImporter(store, srv.URL, 0).Import(ctx)
	require.Nil(t, err)
	assert.Equal(t, Result{Inserted: 1, Skipped: 2}, result)

	ana, err := store.FindByEmail(ctx, "ana@x.com")
	require.Nil(t, err)
	assert.Equal(t, "Ana Original", ana.Name)
}

func TestSeedWithNonArrayPayloadInsertsNothing(t *testing.T) {
	cases := map[string]string{
		"object":  `{"clientes": {"Nome": "Ana"}}`,
		"missing": `{"outros": []}`,
		"null":    `{"clientes": null}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()
			require.Nil(t, store.Create(ctx, &models.Person{Name: "Old", Email: "old@x.com", Phone: "1", Type: "Operador"}))

			srv := sourceServer(t, http.StatusOK, body)
			result, err := NewImporter(store, srv.URL, 0).Seed(ctx)
			assert.True(t, errors.Is(err, ErrPayloadNotArray))
			assert.Equal(t, Result{}, result)

			count, err := store.Count(ctx)
			assert.Nil(t, err)
			assert.Zero(t, count, "table is cleared but nothing inserted")
		})
	}
}

func TestSeedWithEmptyBodyImportsNothing(t *testing.T) {
	store := newTestStore(t)
	srv := sourceServer(t, http.StatusOK, "")

	result, err := NewImporter(store, srv.URL, 0).Seed(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, Result{}, result)
}

func TestSeedFailsOnUpstreamError(t *testing.T) {
	store := newTestStore(t)
	srv := sourceServer(t, http.StatusBadGateway, twoClientesSameEmail)

	_, err := NewImporter(store, srv.URL, 0).Seed(context.Background())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "unexpected status")

	count, err := store.Count(context.Background())
	assert.Nil(t, err)
	assert.Zero(t, count)
}

func TestParsePayloadRejectsMalformedBody(t *testing.T) {
	_, err := parsePayload([]byte(`{"body": "not json"}`))
	assert.NotNil(t, err)

	_, err = parsePayload([]byte(`not json`))
	assert.NotNil(t, err)
}
