package container

import (
	"context"
	"fmt"
	"log"

	"launchdash/adapters/excel"
	"launchdash/adapters/sqlstore"
	"launchdash/domain/launch"
	"launchdash/internal"
	"launchdash/internal/config"
	"launchdash/internal/errors"
	"launchdash/internal/testkit"
	"launchdash/ports"
	"launchdash/ui/services"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Log    *internal.Logger

	// Infrastructure
	Source ports.LaunchSource
	Store  *sqlstore.Store

	// Loaded once at startup and shared read-only
	Dataset *launch.Dataset
	Catalog *launch.Catalog
	Data    *services.DataService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &Container{
		Config: cfg,
		Log:    internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)).With("Container"),
	}, nil
}

// OpenSource picks the dataset source: a file, then a database, then synthetic data
func (c *Container) OpenSource() (ports.LaunchSource, error) {
	switch {
	case c.Config.Data.File != "":
		c.Log.Info("Using file data source: %s", c.Config.Data.File)
		c.Source = excel.NewFileSource(c.Config.Data.File)
	case c.Config.Database.Enabled():
		store, err := sqlstore.Open(c.Config.Database.Driver, c.Config.Database.URL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open launch database")
		}
		c.Log.Info("Using database data source: %s", store.Describe())
		c.Store = store
		c.Source = store
	default:
		c.Log.Warn("No data file or database configured, using synthetic launches")
		gen := testkit.DefaultLaunchConfig()
		gen.Seed = c.Config.Data.SyntheticSeed
		gen.LaunchCount = c.Config.Data.SyntheticCount
		c.Source = testkit.NewSyntheticSource(gen)
	}
	return c.Source, nil
}

// Load reads the dataset once, resolves the site catalog and builds the data service.
// Any failure here is a DATASET_LOAD or CONFIG_INVALID error and is fatal at startup.
func (c *Container) Load(ctx context.Context) error {
	if c.Source == nil {
		if _, err := c.OpenSource(); err != nil {
			return err
		}
	}

	ds, err := c.Source.Load(ctx)
	if err != nil {
		if errors.GetCode(err) == errors.CodeDatasetLoad {
			return err
		}
		return errors.DatasetLoad(fmt.Sprintf("failed to load %s", c.Source.Describe()), err)
	}
	if ds.Len() == 0 {
		return errors.DatasetLoad(fmt.Sprintf("%s contains no launches", c.Source.Describe()), nil)
	}

	catalog, err := config.LoadCatalog(c.Config.Data.SitesFile)
	if err != nil {
		return err
	}
	catalog, added := catalog.Extend(ds)
	for _, site := range added {
		c.Log.Warn("Site %q is in the dataset but not in the site catalog; adding it", site)
	}

	data, err := services.NewDataService(ds, catalog, c.Source.Describe())
	if err != nil {
		return err
	}

	c.Dataset = ds
	c.Catalog = catalog
	c.Data = data
	c.Log.Debug("Catalog has %d sites, dataset %d launches", len(catalog.Sites()), ds.Len())
	return nil
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// Import copies every launch from src into dst and returns how many were written
func Import(ctx context.Context, src ports.LaunchSource, dst ports.LaunchWriter) (int, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := dst.ReplaceAll(ctx, ds.Records()); err != nil {
		return 0, err
	}
	log.Printf("Imported %d launches from %s", ds.Len(), src.Describe())
	return ds.Len(), nil
}
