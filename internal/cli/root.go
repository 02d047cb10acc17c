// Package cli holds the cobra commands of the api binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/crud-backends/internal/config"
)

// NewRootCommand assembles the api command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "api",
		Short:         "Fyyur, trivia and coffee shop backends",
		Long:          `api serves one of three CRUD backends (fyyur, trivia, coffee) and manages their schemas.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newTokenCommand(),
	)
	return root
}

// loadConfig resolves the defaults of app and reads the environment on top of them.
func loadConfig(app string) (*config.Config, error) {
	defaults, err := config.DefaultsFor(app)
	if err != nil {
		return nil, err
	}
	return config.Load(defaults)
}
