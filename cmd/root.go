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
	"os"
	"strings"

	"github.com/Daskott/people/colors"
	devconfig "github.com/Daskott/people/dev/config"
	"github.com/Daskott/people/server/importer"
	"github.com/Daskott/people/server/logger"
	"github.com/Daskott/people/shared"
	"github.com/Daskott/people/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	CONFIG_NAME = "people"
	ENV_PREFIX  = "PEOPLE"
)

var (
	cfgFile  string
	config   *viper.Viper
	isDevEnv bool

	logg = logger.NewLogger()

	warningLabel = colors.Yellow("Warning:")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd = createRootCmd()
	rootCmd.AddCommand(createServerCmd(), createSeedCmd(), createClientCmd(), createLambdaCmd())
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "people",
		Short: `people manages a list of guests, owners, operators & suppliers.

It runs the people API (as a long lived server or one lambda per route),
seeds the database from the external clients API and ships a terminal client.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./people.yaml or $HOME/.people/people.yaml)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode with the bundled dev config")

	return cmd
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// .env is optional, real env vars win over it
	if utils.FileExist(".env") {
		if err := godotenv.Load(); err != nil {
			logg.Warnf("error loading .env: %v", err)
		}
	}

	var err error
	config, err = loadConfig(cfgFile, isDevEnv)
	cobra.CheckErr(err)
}

func loadConfig(configFile string, devMode bool) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // read in environment variables that match

	// DATABASE_URL is read without the prefix
	v.BindEnv("database.dsn", "PEOPLE_DATABASE_DSN", "DATABASE_URL")

	v.SetConfigType("yaml")
	switch {
	case devMode:
		if err := v.ReadConfig(strings.NewReader(devconfig.SERVER_YML)); err != nil {
			return nil, fmt.Errorf("error reading dev config: %v", err)
		}

	case configFile != "":
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}

	default:
		v.SetConfigName(CONFIG_NAME)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.people")
		}

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %v", err)
			}
		}
	}

	if used := v.ConfigFileUsed(); used != "" {
		logg.Infof("Using config file: %v", used)
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listener.port", 3001)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.dir", ".")
	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("seed.url", importer.DEFAULT_URL)
	v.SetDefault("seed.timeout", importer.DEFAULT_TIMEOUT)
	v.SetDefault("seed.schedule", "")
	v.SetDefault("cron.timeZone", "America/Sao_Paulo")
	v.SetDefault("client.baseURL", "http://localhost:3001")
	v.SetDefault("client.timeout", "10s")
}

func serverConfig(v *viper.Viper) (shared.ServerConfig, error) {
	serverConfig := shared.ServerConfig{}
	if err := v.Unmarshal(&serverConfig); err != nil {
		return serverConfig, fmt.Errorf("error decoding server config: %v", err)
	}

	if err := shared.Validate.Struct(serverConfig); err != nil {
		return serverConfig, formattedError("invalid server config: %v", shared.ValidationMessage(err))
	}

	return serverConfig, nil
}

func clientConfig(v *viper.Viper) (shared.ClientConfig, error) {
	clientConfig := shared.ClientConfig{}
	if err := v.UnmarshalKey("client", &clientConfig); err != nil {
		return clientConfig, fmt.Errorf("error decoding client config: %v", err)
	}

	if err := shared.Validate.Struct(clientConfig); err != nil {
		return clientConfig, formattedError("invalid client config: %v", shared.ValidationMessage(err))
	}

	return clientConfig, nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(colors.Red(format), a...)
}
