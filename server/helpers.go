package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Daskott/people/server/models"
	"github.com/Daskott/people/shared"
	"github.com/gorilla/mux"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

type ErrorPayload struct {
	Error string `json:"error"`
}

type MessagePayload struct {
	Message string `json:"message"`
	Count   *int64 `json:"count,omitempty"`
}

func writeResponse(rw http.ResponseWriter, payload interface{}, statusCode int) {
	switch {
	case statusCode >= http.StatusInternalServerError:
		logg.Error(payload)
	case statusCode >= http.StatusBadRequest:
		logg.Info(payload)
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payload)
}

func writeError(rw http.ResponseWriter, msg string, statusCode int) {
	writeResponse(rw, ErrorPayload{Error: msg}, statusCode)
}

// writeStoreError maps a lookup miss to 404, anything else to 500 with the raw message
func writeStoreError(rw http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrPersonNotFound) {
		writeError(rw, shared.MSG_PERSON_NOT_FOUND, http.StatusNotFound)
		return
	}

	writeError(rw, err.Error(), http.StatusInternalServerError)
}

// decodeBody reads a JSON body into v. An empty body decodes as {}.
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// personID reads the {id} route variable
func personID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("People server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(importScheduler *ImportScheduler, server *http.Server) {
	// Stop scheduled imports before the server goes away
	if err := importScheduler.Unschedule(); err != nil {
		logg.Errorf("failed to unschedule people import: %v", err)
	}
	importScheduler.CronScheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("People server shutdown failed:%+s", err)
	}

	logg.Infof("People server stopped properly")
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
