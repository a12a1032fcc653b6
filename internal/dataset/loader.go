package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"

	"farsight/internal/config"
	"farsight/internal/errors"
)

// Required columns per source table. Loading fails fast when any is
// missing so schema drift in the extracts surfaces immediately.
var (
	accidentColumns = []string{
		"ST_CASE", "YEAR", "STATE", "COUNTY", "FATALS",
		"A_REGION", "A_RU", "A_INTER", "A_TOD", "A_DOW", "A_CT",
		"A_ROADFC", "A_MANCOL", "A_SPCRA", "A_ROLL", "A_POSBAC",
		"A_PED", "A_MC", "A_DIST", "A_DROWSY",
	}
	vehicleColumns = []string{
		"ST_CASE", "VEH_NO", "A_BODY", "A_IMP1", "A_VROLL",
		"A_LIC_S", "A_SPVEH", "A_MOD_YR", "A_FIRE_EXP",
	}
	personColumns = []string{
		"ST_CASE", "VEH_NO", "PER_NO", "AGE", "A_PTYPE",
		"A_RESTUSE", "A_EJECT", "A_PERINJ", "A_ALCTES", "A_DOA",
	}
)

// Tables holds the three loaded source tables.
type Tables struct {
	Accidents dataframe.DataFrame
	Vehicles  dataframe.DataFrame
	Persons   dataframe.DataFrame
}

// Loader reads the FARS auxiliary extracts from the data directory.
type Loader struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewLoader creates a loader for the configured data directory.
func NewLoader(paths *config.Paths, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{paths: paths, logger: logger}
}

// Load reads the three source CSVs concurrently, validates their schemas,
// and drops duplicate key rows. The context cancels all reads on the first
// failure.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	l.logger.InfoContext(ctx, "loading source tables",
		slog.String("data_dir", l.paths.DataDir))

	var tables Tables
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		df, err := l.loadTable(gctx, l.paths.AccidentCSV, accidentColumns, []string{"ST_CASE"})
		if err != nil {
			return fmt.Errorf("load accidents: %w", err)
		}
		tables.Accidents = df
		return nil
	})
	g.Go(func() error {
		df, err := l.loadTable(gctx, l.paths.VehicleCSV, vehicleColumns, []string{"ST_CASE", "VEH_NO"})
		if err != nil {
			return fmt.Errorf("load vehicles: %w", err)
		}
		tables.Vehicles = df
		return nil
	})
	g.Go(func() error {
		df, err := l.loadTable(gctx, l.paths.PersonCSV, personColumns, []string{"ST_CASE", "VEH_NO", "PER_NO"})
		if err != nil {
			return fmt.Errorf("load persons: %w", err)
		}
		tables.Persons = df
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "loaded source tables",
		slog.Int("accidents", tables.Accidents.Nrow()),
		slog.Int("vehicles", tables.Vehicles.Nrow()),
		slog.Int("persons", tables.Persons.Nrow()))

	return &tables, nil
}

// loadTable reads one CSV into a dataframe, keeps only the required
// columns, and deduplicates on the key columns.
func (l *Loader) loadTable(ctx context.Context, path string, required, keys []string) (dataframe.DataFrame, error) {
	select {
	case <-ctx.Done():
		return dataframe.DataFrame{}, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", errors.ErrSourceNotFound, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file, dataframe.HasHeader(true))
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse %s: %w", path, df.Error())
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", errors.ErrEmptyDataset, path)
	}

	if err := checkColumns(df, required); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, err)
	}

	// Column selection: only the attributes the analysis uses.
	df = df.Select(required)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("select columns in %s: %w", path, df.Error())
	}

	before := df.Nrow()
	df = dropDuplicates(df, keys)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("deduplicate %s: %w", path, df.Error())
	}
	if dropped := before - df.Nrow(); dropped > 0 {
		l.logger.WarnContext(ctx, "dropped duplicate key rows",
			slog.String("file", path),
			slog.Int("dropped", dropped))
	}

	return df, nil
}

// checkColumns verifies every required column is present.
func checkColumns(df dataframe.DataFrame, required []string) error {
	have := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, col := range required {
		if !have[col] {
			return fmt.Errorf("%w: %s", errors.ErrMissingColumn, col)
		}
	}
	return nil
}

// dropDuplicates keeps the first occurrence of each key tuple.
func dropDuplicates(df dataframe.DataFrame, keys []string) dataframe.DataFrame {
	records := df.Records()
	if len(records) < 2 {
		return df
	}

	header := records[0]
	keyIdx := make([]int, 0, len(keys))
	for _, key := range keys {
		for i, name := range header {
			if name == key {
				keyIdx = append(keyIdx, i)
				break
			}
		}
	}

	seen := make(map[string]bool, len(records)-1)
	kept := make([][]string, 0, len(records))
	kept = append(kept, header)
	for _, row := range records[1:] {
		var id string
		for _, i := range keyIdx {
			id += row[i] + "\x1f"
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		kept = append(kept, row)
	}

	if len(kept) == len(records) {
		return df
	}
	return dataframe.LoadRecords(kept)
}
