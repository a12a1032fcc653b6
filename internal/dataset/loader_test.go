package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farsight/internal/config"
	"farsight/internal/errors"
)

const accidentHeader = "ST_CASE,YEAR,STATE,COUNTY,FATALS,A_REGION,A_RU,A_INTER,A_TOD,A_DOW,A_CT,A_ROADFC,A_MANCOL,A_SPCRA,A_ROLL,A_POSBAC,A_PED,A_MC,A_DIST,A_DROWSY"

const vehicleHeader = "ST_CASE,VEH_NO,A_BODY,A_IMP1,A_VROLL,A_LIC_S,A_SPVEH,A_MOD_YR,A_FIRE_EXP"

const personHeader = "ST_CASE,VEH_NO,PER_NO,AGE,A_PTYPE,A_RESTUSE,A_EJECT,A_PERINJ,A_ALCTES,A_DOA"

// writeFixtures writes a minimal consistent set of the three extracts and
// returns paths rooted in a temp dir.
func writeFixtures(t *testing.T, accidents, vehicles, persons string) *config.Paths {
	t.Helper()

	dir := t.TempDir()
	paths := &config.Paths{
		DataDir:     dir,
		AccidentCSV: filepath.Join(dir, config.AccidentFileName),
		VehicleCSV:  filepath.Join(dir, config.VehicleFileName),
		PersonCSV:   filepath.Join(dir, config.PersonFileName),
	}

	require.NoError(t, os.WriteFile(paths.AccidentCSV, []byte(accidents), 0o644))
	require.NoError(t, os.WriteFile(paths.VehicleCSV, []byte(vehicles), 0o644))
	require.NoError(t, os.WriteFile(paths.PersonCSV, []byte(persons), 0o644))
	return paths
}

func defaultFixtures(t *testing.T) *config.Paths {
	t.Helper()
	accidents := accidentHeader + "\n" +
		"10001,2019,1,5,1,3,1,2,1,1,1,3,1,1,2,2,2,2,2,2\n" +
		"10002,2019,1,7,2,3,2,2,2,2,2,1,3,2,1,1,2,2,2,2\n" +
		"10003,2019,2,9,1,4,1,1,1,2,2,6,4,2,2,2,2,1,1,2\n"
	vehicles := vehicleHeader + "\n" +
		"10001,1,1,1,2,1,2,1,2\n" +
		"10002,1,2,2,1,1,2,2,2\n" +
		"10002,2,1,3,2,2,2,1,2\n" +
		"10003,1,7,1,2,1,2,1,2\n"
	persons := personHeader + "\n" +
		"10001,1,1,34,1,1,2,1,0,2\n" +
		"10002,1,1,61,1,2,1,1,12,1\n" +
		"10002,2,1,27,1,1,2,2,96,2\n" +
		"10003,1,1,45,1,2,1,1,8,1\n"
	return writeFixtures(t, accidents, vehicles, persons)
}

func TestLoader_Load(t *testing.T) {
	paths := defaultFixtures(t)
	loader := NewLoader(paths, slog.Default())

	tables, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, tables.Accidents.Nrow())
	assert.Equal(t, 4, tables.Vehicles.Nrow())
	assert.Equal(t, 4, tables.Persons.Nrow())
	assert.Contains(t, tables.Accidents.Names(), "FATALS")
	assert.Contains(t, tables.Persons.Names(), "A_ALCTES")
}

func TestLoader_Load_MissingFile(t *testing.T) {
	paths := defaultFixtures(t)
	require.NoError(t, os.Remove(paths.VehicleCSV))

	loader := NewLoader(paths, slog.Default())
	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSourceNotFound)
}

func TestLoader_Load_MissingColumn(t *testing.T) {
	accidents := "ST_CASE,YEAR\n10001,2019\n"
	vehicles := vehicleHeader + "\n10001,1,1,1,2,1,2,1,2\n"
	persons := personHeader + "\n10001,1,1,34,1,1,2,1,0,2\n"
	paths := writeFixtures(t, accidents, vehicles, persons)

	loader := NewLoader(paths, slog.Default())
	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingColumn)
}

func TestLoader_Load_DropsDuplicateKeys(t *testing.T) {
	accidents := accidentHeader + "\n" +
		"10001,2019,1,5,1,3,1,2,1,1,1,3,1,1,2,2,2,2,2,2\n" +
		"10001,2019,1,5,3,3,1,2,1,1,1,3,1,1,2,2,2,2,2,2\n"
	vehicles := vehicleHeader + "\n10001,1,1,1,2,1,2,1,2\n"
	persons := personHeader + "\n10001,1,1,34,1,1,2,1,0,2\n"
	paths := writeFixtures(t, accidents, vehicles, persons)

	loader := NewLoader(paths, slog.Default())
	tables, err := loader.Load(context.Background())
	require.NoError(t, err)

	// First occurrence wins.
	assert.Equal(t, 1, tables.Accidents.Nrow())
	fatals, err2 := tables.Accidents.Col("FATALS").Elem(0).Int()
	require.NoError(t, err2)
	assert.Equal(t, 1, fatals)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	accidents := accidentHeader + "\n"
	vehicles := vehicleHeader + "\n10001,1,1,1,2,1,2,1,2\n"
	persons := personHeader + "\n10001,1,1,34,1,1,2,1,0,2\n"
	paths := writeFixtures(t, accidents, vehicles, persons)

	loader := NewLoader(paths, slog.Default())
	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)
}
