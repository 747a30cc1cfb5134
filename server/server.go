package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/people/server/cron"
	"github.com/Daskott/people/server/importer"
	"github.com/Daskott/people/server/logger"
	"github.com/Daskott/people/server/models"
	"github.com/Daskott/people/shared"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const DEFAULT_PORT = 3001

var logg = logger.NewLogger()

// NewRouter wires every person route behind the request id, logging & recover middlewares.
// The result is wrapped with CORS for allowedOrigins, or any origin when none are given.
func NewRouter(personHandler *PersonHandler, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(initialContextMiddleware)
	router.Use(loggingMiddleware)
	router.Use(recoverMiddleware)

	router.HandleFunc("/", personHandler.listPeople).Methods("GET")
	router.HandleFunc("/", personHandler.createPerson).Methods("POST")
	router.HandleFunc("/", personHandler.missingID).Methods("PUT", "DELETE")
	router.HandleFunc("/import", personHandler.importPeople).Methods("POST")
	router.HandleFunc("/type/{type}", personHandler.updatePeopleByType).Methods("PUT")
	router.HandleFunc("/type/{type}", personHandler.deletePeopleByType).Methods("DELETE")
	router.HandleFunc("/{type}", personHandler.listPeopleByType).Methods("GET")
	router.HandleFunc("/{id}", personHandler.updatePerson).Methods("PUT")
	router.HandleFunc("/{id}", personHandler.deletePerson).Methods("DELETE")

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	return corsHandler.Handler(router)
}

func Start(config shared.ServerConfig) {
	port := config.Listener.Port
	if port == 0 {
		port = DEFAULT_PORT
	}

	db, err := models.OpenDB(config.Database)
	fatalOnError(err)
	fatalOnError(models.AutoMigrate(db))

	store := models.NewPersonStore(db)
	peopleImporter := importer.NewImporter(store, config.Seed.URL, config.Seed.Timeout)

	cronScheduler := cron.NewCronScheduler(config.Cron.TimeZone)
	importScheduler := NewImportScheduler(cronScheduler, peopleImporter)
	fatalOnError(importScheduler.Schedule(config.Seed.Schedule))
	cronScheduler.StartAsync()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", port),
		Handler:      NewRouter(&PersonHandler{Store: store, Importer: peopleImporter}, config.Cors.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go serve(server)

	// Wait for interrupt or terminate signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	cleanup(importScheduler, server)
}
