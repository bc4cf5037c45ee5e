// Command cardsctl inspects and rewrites the stored card collection without
// going through the bot.
package main

import (
	"fmt"
	"os"

	"cardbot/internal/config"
	"cardbot/internal/repository/postgres"
	"cardbot/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger  *zap.Logger
	verbose bool

	// openStorage is replaced in tests
	openStorage = openPostgresStorage
)

var rootCmd = &cobra.Command{
	Use:           "cardsctl",
	Short:         "Manage the stored flashcard collection",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			logger = zap.NewNop()
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.AddCommand(listCmd, exportCmd, importCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openPostgresStorage connects to the bot's database. The returned func
// closes the connection.
func openPostgresStorage() (*service.Persistence, func(), error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.Connect(cfg.DSN(), postgres.ConnectOptions{MaxRetries: 1}, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(db, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	p := service.NewPersistence(postgres.NewSlotRepo(db), cfg.StorageKey, logger)
	return p, func() { db.Close() }, nil
}
