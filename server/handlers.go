package server

import (
	"context"
	"net/http"

	"github.com/Daskott/people/server/importer"
	"github.com/Daskott/people/server/models"
	"github.com/Daskott/people/shared"
	"github.com/gorilla/mux"
)

type PeopleImporter interface {
	Import(ctx context.Context) (importer.Result, error)
}

type PersonHandler struct {
	Store    models.PersonRepository
	Importer PeopleImporter
}

func (ph *PersonHandler) listPeople(rw http.ResponseWriter, r *http.Request) {
	people, err := ph.Store.FindAll(r.Context())
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	writeResponse(rw, people, http.StatusOK)
}

func (ph *PersonHandler) listPeopleByType(rw http.ResponseWriter, r *http.Request) {
	people, err := ph.Store.FindByType(r.Context(), mux.Vars(r)["type"])
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	if len(people) == 0 {
		writeError(rw, shared.MSG_NO_PEOPLE_OF_TYPE, http.StatusNotFound)
		return
	}

	writeResponse(rw, people, http.StatusOK)
}

func (ph *PersonHandler) createPerson(rw http.ResponseWriter, r *http.Request) {
	input := models.PersonInput{}
	if err := decodeBody(r, &input); err != nil {
		writeError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if err := shared.Validate.Struct(input); err != nil {
		writeError(rw, shared.ValidationMessage(err), http.StatusBadRequest)
		return
	}

	person := input.Person()
	if err := ph.Store.Create(r.Context(), &person); err != nil {
		writeStoreError(rw, err)
		return
	}

	writeResponse(rw, person, http.StatusCreated)
}

func (ph *PersonHandler) updatePerson(rw http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		writeError(rw, shared.MSG_INVALID_ID, http.StatusBadRequest)
		return
	}

	data := models.PersonUpdate{}
	if err := decodeBody(r, &data); err != nil {
		writeError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	person, err := ph.Store.UpdateByID(r.Context(), id, data)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	writeResponse(rw, person, http.StatusOK)
}

func (ph *PersonHandler) deletePerson(rw http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		writeError(rw, shared.MSG_INVALID_ID, http.StatusBadRequest)
		return
	}

	if err := ph.Store.DeleteByID(r.Context(), id); err != nil {
		writeStoreError(rw, err)
		return
	}

	writeResponse(rw, MessagePayload{Message: shared.MSG_PERSON_DELETED}, http.StatusOK)
}

// missingID answers PUT / and DELETE /, where the id segment was left out
func (ph *PersonHandler) missingID(rw http.ResponseWriter, r *http.Request) {
	writeError(rw, shared.MSG_ID_NOT_PROVIDED, http.StatusBadRequest)
}

func (ph *PersonHandler) updatePeopleByType(rw http.ResponseWriter, r *http.Request) {
	data := models.PersonUpdate{}
	if err := decodeBody(r, &data); err != nil {
		writeError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	count, err := ph.Store.UpdateByType(r.Context(), mux.Vars(r)["type"], data)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	if count == 0 {
		writeError(rw, shared.MSG_NO_PEOPLE_OF_TYPE, http.StatusNotFound)
		return
	}

	writeResponse(rw, map[string]int64{"count": count}, http.StatusOK)
}

func (ph *PersonHandler) deletePeopleByType(rw http.ResponseWriter, r *http.Request) {
	count, err := ph.Store.DeleteByType(r.Context(), mux.Vars(r)["type"])
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	if count == 0 {
		writeError(rw, shared.MSG_NO_PEOPLE_TO_DELETE, http.StatusNotFound)
		return
	}

	writeResponse(rw, MessagePayload{Message: shared.MSG_PEOPLE_DELETED, Count: &count}, http.StatusOK)
}

func (ph *PersonHandler) importPeople(rw http.ResponseWriter, r *http.Request) {
	if ph.Importer == nil {
		writeError(rw, "import is not configured", http.StatusNotImplemented)
		return
	}

	result, err := ph.Importer.Import(r.Context())
	if err != nil {
		writeError(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	writeResponse(rw, map[string]interface{}{
		"message":  shared.MSG_PEOPLE_IMPORTED,
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
	}, http.StatusOK)
}
