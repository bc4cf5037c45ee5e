package main

import (
	"fmt"
	"math"
	"os"

	"cardbot/internal/domain"
	"cardbot/internal/service"

	"github.com/spf13/cobra"
)

var exportOut string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stored cards",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored cards as an export file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored cards with an export file (stop the bot first)",
	Long: `Replace the stored cards with an export file.

The bot only reads the stored cards on startup and writes its own copy back
after every change. Stop the bot before importing, otherwise its next change
overwrites the imported cards.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the stored cards to the built-in collection (stop the bot first)",
	Long: `Reset the stored cards to the built-in collection.

Like import, this writes the stored cards directly. Stop the bot first so it
does not overwrite them with its in-memory copy.`,
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", service.ExportFileName, "output file, - for stdout")
}

// storedCards reads the collection the way the bot loads it on startup
func storedCards(p *service.Persistence) []domain.Card {
	cards, ok := p.ReadCollection()
	if !ok || len(cards) == 0 {
		return domain.SeedCards()
	}
	return cards
}

func runList(cmd *cobra.Command, args []string) error {
	p, closeFn, err := openStorage()
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	for i, c := range storedCards(p) {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", i+1, c.ID, c.English, c.Kurdish)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	p, closeFn, err := openStorage()
	if err != nil {
		return err
	}
	defer closeFn()

	cards := storedCards(p)
	raw, err := service.EncodeExport(cards)
	if err != nil {
		return err
	}

	if exportOut == "-" {
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	}
	if err := os.WriteFile(exportOut, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards to %s\n", len(cards), exportOut)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	// No size limit for local files
	cards, err := service.DecodeImport(f, math.MaxInt64)
	if err != nil {
		return err
	}

	p, closeFn, err := openStorage()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := p.WriteCollection(cards); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards\n", len(cards))
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	p, closeFn, err := openStorage()
	if err != nil {
		return err
	}
	defer closeFn()

	cards := domain.SeedCards()
	if err := p.WriteCollection(cards); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d seed cards\n", len(cards))
	return nil
}
