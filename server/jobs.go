package server

import (
	"context"
	"errors"

	"github.com/Daskott/people/colors"
	"github.com/go-co-op/gocron"
)

const IMPORT_PEOPLE_TAG = "import_people"

type ImportScheduler struct {
	CronScheduler *gocron.Scheduler
	Importer      PeopleImporter
}

func NewImportScheduler(cronScheduler *gocron.Scheduler, importer PeopleImporter) *ImportScheduler {
	return &ImportScheduler{CronScheduler: cronScheduler, Importer: importer}
}

// Schedule registers a recurring import using a crontab expression.
// An empty expression leaves nothing scheduled.
func (iScheduler ImportScheduler) Schedule(cronExpression string) error {
	if cronExpression == "" {
		return nil
	}

	_, err := iScheduler.CronScheduler.Cron(cronExpression).Tag(IMPORT_PEOPLE_TAG).Do(iScheduler.importPeople)
	if err != nil {
		return err
	}

	logg.Infof(colors.Blue("people import scheduled: %v"), cronExpression)
	return nil
}

// Unschedule drops the recurring import. Nothing scheduled is not an error.
func (iScheduler ImportScheduler) Unschedule() error {
	err := iScheduler.CronScheduler.RemoveByTag(IMPORT_PEOPLE_TAG)
	if err != nil && !errors.Is(err, gocron.ErrJobNotFoundWithTag) {
		return err
	}
	return nil
}

func (iScheduler ImportScheduler) importPeople() {
	result, err := iScheduler.Importer.Import(context.Background())
	if err != nil {
		logg.Errorf("scheduled import failed: %v", err)
		return
	}

	logg.Infof("scheduled import done: %v inserted, %v skipped", result.Inserted, result.Skipped)
}
