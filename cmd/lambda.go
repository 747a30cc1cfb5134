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
	"github.com/Daskott/people/server/importer"
	serverless "github.com/Daskott/people/server/lambda"
	"github.com/Daskott/people/server/models"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var handlerArg string

func createLambdaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Serve a single route as an AWS Lambda function",
		Long: `Starts the lambda runtime for one handler, e.g. --handler get-by-type.
Handlers: get, get-by-type, create, update, delete, update-by-type, delete-by-type, import.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handlers := &serverless.Handlers{}
			handler, err := handlers.ByName(handlerArg)
			if err != nil {
				return formattedError("%v", err)
			}

			serverConfig, err := serverConfig(config)
			if err != nil {
				return err
			}

			db, err := models.OpenDB(serverConfig.Database)
			if err != nil {
				return err
			}

			store := models.NewPersonStore(db)
			handlers.Store = store
			handlers.Importer = importer.NewImporter(store, serverConfig.Seed.URL, serverConfig.Seed.Timeout)

			lambda.Start(handler)
			return nil
		},
	}

	cmd.Flags().StringVar(&handlerArg, "handler", "", "name of the handler to serve")
	cmd.MarkFlagRequired("handler")

	return cmd
}
