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
	"github.com/Daskott/people/client"
	"github.com/Daskott/people/client/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var baseURLArg string

func createClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Browse & edit people from the terminal",
		Long: `Opens a terminal UI over the people API: list, filter by type,
add, edit and delete people.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURLArg != "" {
				config.Set("client.baseURL", baseURLArg)
			}

			clientConfig, err := clientConfig(config)
			if err != nil {
				return err
			}

			peopleClient := client.NewClient(clientConfig.BaseURL, clientConfig.Timeout)
			_, err = tea.NewProgram(ui.NewModel(peopleClient), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&baseURLArg, "url", "", "people API base url (overrides client.baseURL)")

	return cmd
}
