/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"

	"github.com/Daskott/people/colors"
	"github.com/Daskott/people/server/importer"
	"github.com/Daskott/people/server/models"
	"github.com/Daskott/people/shared"
	"github.com/spf13/cobra"
)

func createSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Clear the people table and import everyone from the clients API",
		Long: `Deletes every person, resets ids and imports the records served by seed.url.
Records whose email already exists are skipped. Any failure is fatal.`,
		Run: func(cmd *cobra.Command, args []string) {
			serverConfig, err := serverConfig(config)
			if err != nil {
				logg.Fatal(err)
			}

			result, err := runSeed(cmd.Context(), serverConfig)
			if err != nil {
				logg.Fatal(err)
			}

			logg.Infof(colors.Green("Database seeded! %v inserted, %v skipped"), result.Inserted, result.Skipped)
		},
	}
}

func runSeed(ctx context.Context, serverConfig shared.ServerConfig) (importer.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := models.OpenDB(serverConfig.Database)
	if err != nil {
		return importer.Result{}, err
	}

	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if err := models.AutoMigrate(db); err != nil {
		return importer.Result{}, err
	}

	peopleImporter := importer.NewImporter(models.NewPersonStore(db), serverConfig.Seed.URL, serverConfig.Seed.Timeout)
	return peopleImporter.Seed(ctx)
}
