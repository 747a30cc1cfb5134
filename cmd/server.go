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
	"fmt"

	"github.com/Daskott/people/server"
	"github.com/spf13/cobra"
)

func createServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the people API server",
		Long: `Starts the people REST API. Routes are served from "/" and the server
shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig, err := serverConfig(config)
			if err != nil {
				return err
			}

			if config.ConfigFileUsed() == "" && !isDevEnv {
				fmt.Fprintln(cmd.ErrOrStderr(), warningLabel, "no config file found, using defaults")
			}

			server.Start(serverConfig)
			return nil
		},
	}
}
