package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/dataset"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

const (
	importSQLiteUsage   = "import-sqlite [file.json ...]"
	importSQLiteShort   = "Import reference datasets into the SQLite store"
	importSQLiteLong    = "This command writes reference datasets into the database at sqlite_path. Without arguments the embedded datasets are imported."
	importSQLiteExample = "ferien-checker import-sqlite --db ferien.db data/2027.json"
)

var (
	// ImportSQLiteCmd imports datasets into SQLite.
	ImportSQLiteCmd = &cobra.Command{
		Use:     importSQLiteUsage,
		Short:   importSQLiteShort,
		Long:    importSQLiteLong,
		Example: importSQLiteExample,
		RunE:    executeImportSQLite,
	}
	flagDBPath string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	ImportSQLiteCmd.Flags().StringVar(&flagDBPath, "db", "", "database file (overrides sqlite_path)")
}

func executeImportSQLite(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.SQLitePath
	if flagDBPath != "" {
		path = flagDBPath
	}
	if path == "" {
		return fmt.Errorf("no database given, set sqlite_path or --db")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sets, err := readDatasets(ctx, args)
	if err != nil {
		return err
	}

	db, err := dataset.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, ds := range sets {
		if err := db.Import(ctx, ds); err != nil {
			return fmt.Errorf("import %d: %w", ds.Year, err)
		}
		logging.Info("imported dataset %d into %s", ds.Year, path)
	}
	return nil
}

// readDatasets decodes the given JSON files, or returns the embedded datasets.
func readDatasets(ctx context.Context, files []string) ([]*calendar.ReferenceDataSet, error) {
	if len(files) == 0 {
		return dataset.EmbeddedLoader{}.Load(ctx)
	}
	sets := make([]*calendar.ReferenceDataSet, 0, len(files))
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		ds, err := dataset.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		sets = append(sets, ds)
	}
	return sets, nil
}
