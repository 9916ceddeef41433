package commands

import (
	"context"
	"fmt"

	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/config"
	"github.com/klabast/wb-services/ferien-checker/internal/dataset"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
	"github.com/klabast/wb-services/ferien-checker/internal/remote"
)

// buildLoaders returns the configured dataset loaders in override order.
// The embedded data always comes first. store is nil without data_dir.
func buildLoaders(ctx context.Context, cfg *config.Config) (loaders []dataset.Loader, store *dataset.DirStore, err error) {
	loaders = append(loaders, dataset.EmbeddedLoader{})

	if cfg.SQLitePath != "" {
		db, err := dataset.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		loaders = append(loaders, db)
	}

	if cfg.S3Bucket != "" {
		s3Loader, err := dataset.NewS3Loader(ctx, dataset.S3Config{
			Bucket:  cfg.S3Bucket,
			Prefix:  cfg.S3Prefix,
			Region:  cfg.AWSRegion,
			Profile: cfg.AWSProfile,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init s3 loader: %w", err)
		}
		loaders = append(loaders, s3Loader)
	}

	// The data directory wins so uploads in edit mode override everything else.
	if cfg.DataDir != "" {
		store = dataset.NewDirStore(cfg.DataDir, cfg.EditMode)
		loaders = append(loaders, store)
	}
	return loaders, store, nil
}

// buildSource selects where calendars come from.
func buildSource(cfg *config.Config, registry *dataset.Registry) (compare.Source, error) {
	switch cfg.Source {
	case config.SourceRemote:
		mapping, err := remote.DefaultMapping().WithOverrides(cfg.RemoteRegions)
		if err != nil {
			return nil, err
		}
		client := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout, cfg.RemoteRetries)
		src, err := remote.NewSource(client, mapping)
		if err != nil {
			return nil, err
		}
		src.PerDayHolidays = cfg.RemotePerDay
		logging.Info("Using remote holiday service %s", client.BaseURL)
		return src, nil
	default:
		return compare.NewStaticSource(registry), nil
	}
}

// loadRegistry builds the loaders and loads every configured dataset.
func loadRegistry(ctx context.Context, cfg *config.Config) (*dataset.Registry, []dataset.Loader, *dataset.DirStore, error) {
	loaders, store, err := buildLoaders(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	registry, err := dataset.LoadRegistry(ctx, loaders...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load datasets: %w", err)
	}
	return registry, loaders, store, nil
}
