package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-playground/validator/v10"

	"farsight/internal/errors"
	"farsight/pkg/contracts/domain"
)

// ToRecords converts the merged (and decorated) dataframe into typed
// crash records. Label and engineered columns are carried over when the
// dataframe has them; missing columns leave zero values.
func ToRecords(df dataframe.DataFrame) []domain.CrashRecord {
	n := df.Nrow()
	records := make([]domain.CrashRecord, 0, n)

	intCol := func(name string) func(i int) int {
		if !hasColumn(df, name) {
			return func(int) int { return 0 }
		}
		col := df.Col(name)
		return func(i int) int {
			v, _ := col.Elem(i).Int()
			return v
		}
	}
	strCol := func(name string) func(i int) string {
		if !hasColumn(df, name) {
			return func(int) string { return "" }
		}
		col := df.Col(name)
		return func(i int) string { return col.Elem(i).String() }
	}

	var (
		stCase    = intCol("ST_CASE")
		year      = intCol("YEAR")
		state     = intCol("STATE")
		county    = intCol("COUNTY")
		fatals    = intCol("FATALS")
		region    = intCol("A_REGION")
		ru        = intCol("A_RU")
		inter     = intCol("A_INTER")
		tod       = intCol("A_TOD")
		dow       = intCol("A_DOW")
		ct        = intCol("A_CT")
		roadfc    = intCol("A_ROADFC")
		mancol    = intCol("A_MANCOL")
		spcra     = intCol("A_SPCRA")
		roll      = intCol("A_ROLL")
		posbac    = intCol("A_POSBAC")
		ped       = intCol("A_PED")
		mc        = intCol("A_MC")
		dist      = intCol("A_DIST")
		drowsy    = intCol("A_DROWSY")
		vehNo     = intCol("VEH_NO")
		body      = intCol("A_BODY")
		imp1      = intCol("A_IMP1")
		vroll     = intCol("A_VROLL")
		licS      = intCol("A_LIC_S")
		spveh     = intCol("A_SPVEH")
		modYr     = intCol("A_MOD_YR")
		fireExp   = intCol("A_FIRE_EXP")
		perNo     = intCol("PER_NO")
		age       = intCol("AGE")
		ptype     = intCol("A_PTYPE")
		restuse   = intCol("A_RESTUSE")
		eject     = intCol("A_EJECT")
		perinj    = intCol("A_PERINJ")
		alctes    = intCol("A_ALCTES")
		doa       = intCol("A_DOA")
		regionLbl = strCol("REGION_LABEL")
		ruLbl     = strCol("RU_LABEL")
		roadLbl   = strCol("ROADFC_LABEL")
		colLbl    = strCol("MANCOL_LABEL")
		bodyLbl   = strCol("BODY_LABEL")
		ptypeLbl  = strCol("PTYPE_LABEL")
		injLbl    = strCol("INJURY_LABEL")
		ageBand   = strCol("AGE_BAND")
	)

	for i := 0; i < n; i++ {
		rec := domain.CrashRecord{
			Accident: domain.Accident{
				STCase:            stCase(i),
				Year:              year(i),
				State:             state(i),
				County:            county(i),
				Fatals:            fatals(i),
				Region:            region(i),
				RuralUrban:        ru(i),
				Interstate:        inter(i),
				TimeOfDay:         tod(i),
				DayOfWeek:         dow(i),
				CrashType:         ct(i),
				RoadFunction:      roadfc(i),
				MannerOfCollision: mancol(i),
				Speeding:          spcra(i),
				Rollover:          roll(i),
				PositiveBAC:       posbac(i),
				Pedestrian:        ped(i),
				Motorcycle:        mc(i),
				Distracted:        dist(i),
				Drowsy:            drowsy(i),
			},
			Vehicle: domain.Vehicle{
				STCase:         stCase(i),
				VehNo:          vehNo(i),
				BodyType:       body(i),
				InitialImpact:  imp1(i),
				Rollover:       vroll(i),
				LicenseState:   licS(i),
				SpecialVehicle: spveh(i),
				ModelYearClass: modYr(i),
				FireExplosion:  fireExp(i),
			},
			Person: domain.Person{
				STCase:        stCase(i),
				VehNo:         vehNo(i),
				PerNo:         perNo(i),
				Age:           age(i),
				PersonType:    ptype(i),
				Restraint:     restuse(i),
				Ejection:      eject(i),
				Injury:        perinj(i),
				AlcoholTest:   alctes(i),
				DeadOnArrival: doa(i),
			},
			RegionLabel:     regionLbl(i),
			RuralUrbanLabel: ruLbl(i),
			RoadFuncLabel:   roadLbl(i),
			CollisionLabel:  colLbl(i),
			BodyTypeLabel:   bodyLbl(i),
			PersonTypeLabel: ptypeLbl(i),
			InjuryLabel:     injLbl(i),
			AgeBand:         ageBand(i),
		}

		rec.BAC, rec.BACKnown = rec.Person.BAC()
		rec.SpeedingFlag = rec.Accident.InvolvedSpeeding()
		rec.AlcoholFlag = rec.Accident.InvolvedAlcohol()
		rec.WeekendFlag = rec.Accident.IsWeekend()
		rec.NightFlag = rec.Accident.IsNighttime()
		rec.RolloverFlag = rec.Vehicle.RolledOver()
		rec.RestrainedFlag = rec.Person.Restraint == 1

		records = append(records, rec)
	}

	return records
}

// ValidRecords converts the merged table into typed crash records and drops
// rows breaking the structural invariants: consistent join keys across the
// three sides and the tagged field constraints (valid state codes, FARS-era
// years, at least one fatality). The returned dataframe is restricted to the
// surviving rows so the tabular and typed views stay aligned.
func ValidRecords(ctx context.Context, logger *slog.Logger, df dataframe.DataFrame) ([]domain.CrashRecord, dataframe.DataFrame, error) {
	if logger == nil {
		logger = slog.Default()
	}

	records := ToRecords(df)
	validate := validator.New()

	valid := make([]domain.CrashRecord, 0, len(records))
	keep := make([]int, 0, len(records))
	for i, rec := range records {
		if !rec.IsValid() {
			continue
		}
		if err := validate.Struct(rec); err != nil {
			continue
		}
		valid = append(valid, rec)
		keep = append(keep, i)
	}

	if len(valid) == 0 {
		return nil, dataframe.DataFrame{}, fmt.Errorf("validate records: %w", errors.ErrEmptyDataset)
	}

	if dropped := len(records) - len(valid); dropped > 0 {
		df = df.Subset(keep)
		if df.Error() != nil {
			return nil, dataframe.DataFrame{}, fmt.Errorf("subset valid rows: %w", df.Error())
		}
		logger.WarnContext(ctx, "dropped invalid crash records",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(valid)))
	}

	return valid, df, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
