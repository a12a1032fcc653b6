package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"farsight/internal/errors"
	"farsight/pkg/contracts/domain"
)

// Clean removes rows unusable for analysis from the merged table: ages
// coded as not-reported or unknown, and rows with a non-positive fatality
// count. Drop counts are logged so data loss stays visible.
func Clean(ctx context.Context, logger *slog.Logger, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if logger == nil {
		logger = slog.Default()
	}

	before := df.Nrow()

	df = df.Filter(dataframe.F{Colname: "AGE", Comparator: series.Less, Comparando: domain.AgeNotReported})
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter sentinel ages: %w", df.Error())
	}
	afterAge := df.Nrow()

	df = df.Filter(dataframe.F{Colname: "FATALS", Comparator: series.GreaterEq, Comparando: 1})
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter fatality counts: %w", df.Error())
	}

	logger.InfoContext(ctx, "cleaned merged table",
		slog.Int("rows_in", before),
		slog.Int("dropped_unknown_age", before-afterAge),
		slog.Int("dropped_bad_fatals", afterAge-df.Nrow()),
		slog.Int("rows_out", df.Nrow()))

	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("after cleaning: %w", errors.ErrEmptyDataset)
	}

	return df, nil
}

// Decorate adds decoded label columns for the coded categorical fields.
// The frequency tables and charts read these instead of raw codes.
func Decorate(df dataframe.DataFrame) dataframe.DataFrame {
	n := df.Nrow()
	cols := []struct {
		source string
		target string
		decode func(int) string
	}{
		{"A_REGION", "REGION_LABEL", DecodeRegion},
		{"A_RU", "RU_LABEL", DecodeRuralUrban},
		{"A_TOD", "TOD_LABEL", DecodeTimeOfDay},
		{"A_DOW", "DOW_LABEL", DecodeDayOfWeek},
		{"A_CT", "CRASH_TYPE_LABEL", DecodeCrashType},
		{"A_ROADFC", "ROADFC_LABEL", DecodeRoadFunction},
		{"A_MANCOL", "MANCOL_LABEL", DecodeCollision},
		{"A_BODY", "BODY_LABEL", DecodeBodyType},
		{"A_PTYPE", "PTYPE_LABEL", DecodePersonType},
		{"A_PERINJ", "INJURY_LABEL", DecodeInjury},
		{"A_RESTUSE", "RESTRAINT_LABEL", DecodeRestraint},
	}

	for _, c := range cols {
		codes := df.Col(c.source)
		labels := make([]string, n)
		for i := 0; i < n; i++ {
			code, _ := codes.Elem(i).Int()
			labels[i] = c.decode(code)
		}
		df = df.Mutate(series.New(labels, series.String, c.target))
		if df.Error() != nil {
			return df
		}
	}

	return df
}
