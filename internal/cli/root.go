// Package cli implements the gymdesk command-line client.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gymdesk/gymdesk/pkg/client"
)

var (
	cfgFile   string
	serverURL string
	output    string
)

// NewRootCmd builds the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gymdesk",
		Short:         "Command-line client for the GymDesk API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.gymdesk.yaml)")
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "API server base URL")
	root.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format: table, json, or yaml")

	viper.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	viper.BindPFlag("output", root.PersistentFlags().Lookup("output"))

	cobra.OnInitialize(initConfig)

	root.AddCommand(newLoginCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newMembersCmd())
	root.AddCommand(newNotificationsCmd())

	return root
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".gymdesk")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("GYMDESK")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// apiClient builds a client from the resolved configuration
func apiClient() *client.Client {
	c := client.New(viper.GetString("server"))
	if token := viper.GetString("token"); token != "" {
		c.SetToken(token)
	}
	return c
}

// saveToken persists the access token into the config file for later commands
func saveToken(token string) error {
	viper.Set("token", token)

	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, ".gymdesk.yaml")
	}

	return viper.WriteConfigAs(path)
}
