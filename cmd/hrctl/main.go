// hrctl is the command-line companion to the CicedoHR server. It operates
// on the same SQLite blob store, so bulk CSV loads and exports can run
// without the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cortsfranco/CicedoHR/assistant"
	"github.com/cortsfranco/CicedoHR/csvio"
	"github.com/cortsfranco/CicedoHR/roster"
	"github.com/cortsfranco/CicedoHR/store/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "hrctl",
	Short: "CicedoHR data toolbox",
	Long: `hrctl loads, exports and queries the CicedoHR dataset directly.

It opens the same SQLite database the server uses, so imports and exports
done here show up in the console immediately after a restart.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("HRCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("db", "cicedohr.db", "SQLite database path")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(askCmd())
}

func importCmd() *cobra.Command {
	imp := &cobra.Command{Use: "import", Short: "Import CSV files"}
	imp.AddCommand(importCollaboratorsCmd())
	imp.AddCommand(importRecordsCmd())
	return imp
}

func importCollaboratorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collaborators <file>",
		Short: "Import collaborators from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *roster.Store) error {
				rows, err := readCSVFile(args[0])
				if err != nil {
					return err
				}
				accepted, rowErrs := csvio.ValidateCollaborators(rows, store.Collaborators())
				imported := store.ImportCollaborators(ctx, accepted)
				return printImportResult(imported, rowErrs)
			})
		},
	}
	return cmd
}

func importRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "Import HR records from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *roster.Store) error {
				rows, err := readCSVFile(args[0])
				if err != nil {
					return err
				}
				accepted, rowErrs := csvio.ValidateRecords(rows, store.Collaborators())
				imported := store.ImportRecords(ctx, accepted)
				return printImportResult(imported, rowErrs)
			})
		},
	}
	return cmd
}

func exportCmd() *cobra.Command {
	exp := &cobra.Command{Use: "export", Short: "Export collections as CSV"}
	exp.AddCommand(&cobra.Command{
		Use:   "collaborators [file]",
		Short: "Export collaborators (stdout when no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *roster.Store) error {
				return writeOutput(args, csvio.ExportCollaborators(store.Collaborators()))
			})
		},
	})
	exp.AddCommand(&cobra.Command{
		Use:   "records [file]",
		Short: "Export HR records (stdout when no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *roster.Store) error {
				return writeOutput(args, csvio.ExportRecords(store.Records()))
			})
		},
	})
	return exp
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dataset counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *roster.Store) error {
				snap := store.Snapshot()
				active := 0
				for _, c := range snap.Collaborators {
					if c.Status == roster.StatusActive {
						active++
					}
				}
				out := map[string]any{
					"collaborators": len(snap.Collaborators),
					"active":        active,
					"records":       len(snap.Records),
				}
				if viper.GetBool("json") {
					return printJSON(out)
				}
				fmt.Printf("Collaborators: %d (%d active)\n", len(snap.Collaborators), active)
				fmt.Printf("Records:       %d\n", len(snap.Records))
				return nil
			})
		},
	}
	return cmd
}

func askCmd() *cobra.Command {
	var llmURL, llmModel string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant a question about the dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *roster.Store) error {
				client := assistant.New(llmURL, llmModel)
				answer, err := client.Ask(ctx, args[0], store.Snapshot())
				if err != nil {
					return err
				}
				fmt.Println(answer)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&llmURL, "llm-url", "https://api.openai.com/v1", "OpenAI-compatible base URL")
	cmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "model name")
	return cmd
}

// --- helpers ---

func withStore(ctx context.Context, fn func(context.Context, *roster.Store) error) error {
	persister, err := sqlite.New(viper.GetString("db"))
	if err != nil {
		return err
	}
	defer persister.Close()
	return fn(ctx, roster.Load(ctx, persister))
}

func readCSVFile(path string) ([]csvio.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return csvio.Parse(string(data))
}

func printImportResult(imported int, rowErrs []string) error {
	if viper.GetBool("json") {
		if rowErrs == nil {
			rowErrs = []string{}
		}
		return printJSON(map[string]any{"imported": imported, "errors": rowErrs})
	}
	fmt.Printf("Imported %d rows\n", imported)
	for _, e := range rowErrs {
		fmt.Println(" ", e)
	}
	return nil
}

func writeOutput(args []string, content string) error {
	if len(args) == 0 {
		fmt.Print(content)
		return nil
	}
	return os.WriteFile(args[0], []byte(content), 0o644)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
