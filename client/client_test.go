package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Daskott/people/server"
	"github.com/Daskott/people/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	db, err := models.InitializeTestDb()
	require.Nil(t, err)

	ts := httptest.NewServer(server.NewRouter(&server.PersonHandler{Store: models.NewPersonStore(db)}, nil))
	t.Cleanup(ts.Close)

	return NewClient(ts.URL+"/", 0)
}

func strPtr(s string) *string {
	return &s
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	people, err := c.ListPeople(ctx)
	require.Nil(t, err)
	assert.Empty(t, people)

	ana, err := c.CreatePerson(ctx, models.PersonInput{Name: "Ana", Email: "ana@x.com", Phone: "+55 11 99999-0000", Type: "Hóspede"})
	require.Nil(t, err)
	assert.NotZero(t, ana.ID)

	guests, err := c.ListPeopleByType(ctx, "Hóspede")
	require.Nil(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, ana.ID, guests[0].ID)

	updated, err := c.UpdatePerson(ctx, ana.ID, models.PersonUpdate{Phone: strPtr("+55 11 98888-0000")})
	require.Nil(t, err)
	assert.Equal(t, "+55 11 98888-0000", updated.Phone)
	assert.Equal(t, "Ana", updated.Name)

	require.Nil(t, c.DeletePerson(ctx, ana.ID))

	people, err = c.ListPeople(ctx)
	require.Nil(t, err)
	assert.Empty(t, people)
}

func TestClientBulkByType(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com"} {
		_, err := c.CreatePerson(ctx, models.PersonInput{Name: "Fornecedor", Email: email, Phone: "1", Type: "Fornecedor"})
		require.Nil(t, err)
	}

	count, err := c.UpdatePeopleByType(ctx, "Fornecedor", models.PersonUpdate{Phone: strPtr("0800")})
	require.Nil(t, err)
	assert.Equal(t, int64(2), count)

	count, err = c.DeletePeopleByType(ctx, "Fornecedor")
	require.Nil(t, err)
	assert.Equal(t, int64(2), count)
}

func TestClientAPIError(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.ListPeopleByType(ctx, "Operador")
	apiErr := &APIError{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "No people found with the given type", apiErr.Message)

	err = c.DeletePerson(ctx, 7)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Person not found", apiErr.Message)

	_, err = c.CreatePerson(ctx, models.PersonInput{Name: "Ana"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClientPlainTextError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		http.Error(rw, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 0).ListPeople(context.Background())
	apiErr := &APIError{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Equal(t, "502 bad gateway", err.Error())
}
