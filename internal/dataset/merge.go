package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"farsight/internal/errors"
)

// Merge inner-joins the three source tables into the flat crash table:
// accidents with vehicles on ST_CASE, then with persons on ST_CASE and
// VEH_NO. Rows without a match in all three tables are excluded.
func Merge(ctx context.Context, logger *slog.Logger, tables *Tables) (dataframe.DataFrame, error) {
	if logger == nil {
		logger = slog.Default()
	}

	av := tables.Accidents.InnerJoin(tables.Vehicles, "ST_CASE")
	if av.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("join accidents with vehicles: %w", av.Error())
	}
	logger.InfoContext(ctx, "joined accidents with vehicles",
		slog.Int("accidents", tables.Accidents.Nrow()),
		slog.Int("vehicles", tables.Vehicles.Nrow()),
		slog.Int("joined", av.Nrow()))

	merged := av.InnerJoin(tables.Persons, "ST_CASE", "VEH_NO")
	if merged.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("join with persons: %w", merged.Error())
	}
	logger.InfoContext(ctx, "joined with persons",
		slog.Int("persons", tables.Persons.Nrow()),
		slog.Int("joined", merged.Nrow()))

	if merged.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.ErrNoMatchingRows
	}

	return merged, nil
}
