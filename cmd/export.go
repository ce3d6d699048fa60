package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/theirongolddev/hidralife/internal/config"
	"github.com/theirongolddev/hidralife/internal/state"
	"github.com/theirongolddev/hidralife/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagExportFormat string
	flagExportOutput string
	flagExportRaw    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export settings, logs and daily stats",
	Example: "  hidralife export --format yaml\n" +
		"  hidralife export --format csv -o drinks.csv\n" +
		"  hidralife export --raw",
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "json", "Output format: json, yaml or csv (logs only)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVar(&flagExportRaw, "raw", false, "Dump stored values without decoding them")
	rootCmd.AddCommand(exportCmd)
}

var exportFormats = []string{"json", "yaml", "csv"}

func runExport(_ *cobra.Command, _ []string) error {
	if !flagExportRaw {
		if err := checkExportFormat(flagExportFormat); err != nil {
			return err
		}
	}

	// The output file is only created once the source opened cleanly.
	if flagExportRaw {
		kv, err := store.Open(config.StorePath(dataDir()))
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()
		return withExportOutput(func(w io.Writer) error { return exportRaw(w, kv) })
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return withExportOutput(func(w io.Writer) error {
		return writeExport(w, flagExportFormat, s.tracker.State())
	})
}

func withExportOutput(write func(io.Writer) error) error {
	if flagExportOutput == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(flagExportOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagExportOutput, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func checkExportFormat(format string) error {
	if slices.Contains(exportFormats, format) {
		return nil
	}
	return fmt.Errorf("unknown format %q (use json, yaml or csv)", format)
}

func writeExport(w io.Writer, format string, st *state.State) error {
	if err := checkExportFormat(format); err != nil {
		return err
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeLogsCSV(w, st)
	}
}

func writeLogsCSV(w io.Writer, st *state.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "time", "amount_ml"}); err != nil {
		return err
	}
	for _, l := range st.Logs {
		row := []string{l.ID, l.Time().Format(time.RFC3339), strconv.Itoa(l.Amount)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// rawStore is the read surface exportRaw needs. *store.KV satisfies it.
type rawStore interface {
	Keys() ([]string, error)
	Get(key string) (string, bool, error)
	UpdatedAt(key string) (time.Time, error)
}

func exportRaw(w io.Writer, kv rawStore) error {
	keys, err := kv.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		v, ok, err := kv.Get(k)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		updated, err := kv.UpdatedAt(k)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", k, updated.Format(time.RFC3339), v); err != nil {
			return err
		}
	}
	return nil
}
