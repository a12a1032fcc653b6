package domain

// Accident represents one crash-level row from the FARS ACC_AUX extract.
// Coded attribute fields carry the raw numeric codes from the source file;
// decoding to labels happens in the dataset package.
type Accident struct {
	STCase            int `json:"st_case" csv:"ST_CASE" validate:"required,min=1"`
	Year              int `json:"year" csv:"YEAR" validate:"required,min=1975"`
	State             int `json:"state" csv:"STATE" validate:"min=1,max=56"`
	County            int `json:"county" csv:"COUNTY"`
	Fatals            int `json:"fatals" csv:"FATALS" validate:"min=1"`
	Region            int `json:"region" csv:"A_REGION"`
	RuralUrban        int `json:"rural_urban" csv:"A_RU"`
	Interstate        int `json:"interstate" csv:"A_INTER"`
	TimeOfDay         int `json:"time_of_day" csv:"A_TOD"`
	DayOfWeek         int `json:"day_of_week" csv:"A_DOW"`
	CrashType         int `json:"crash_type" csv:"A_CT"`
	RoadFunction      int `json:"road_function" csv:"A_ROADFC"`
	MannerOfCollision int `json:"manner_of_collision" csv:"A_MANCOL"`
	Speeding          int `json:"speeding" csv:"A_SPCRA"`
	Rollover          int `json:"rollover" csv:"A_ROLL"`
	PositiveBAC       int `json:"positive_bac" csv:"A_POSBAC"`
	Pedestrian        int `json:"pedestrian" csv:"A_PED"`
	Motorcycle        int `json:"motorcycle" csv:"A_MC"`
	Distracted        int `json:"distracted" csv:"A_DIST"`
	Drowsy            int `json:"drowsy" csv:"A_DROWSY"`
}

// Key returns the join key for the accident table.
func (a Accident) Key() int {
	return a.STCase
}

// IsValid reports whether the row satisfies the basic ACC_AUX invariants:
// a positive case number and at least one fatality (FARS only records
// fatal crashes).
func (a Accident) IsValid() bool {
	return a.STCase > 0 && a.Year > 0 && a.Fatals > 0
}

// InvolvedSpeeding reports whether speeding was a factor (code 1 = yes).
func (a Accident) InvolvedSpeeding() bool {
	return a.Speeding == 1
}

// InvolvedAlcohol reports whether a positive-BAC driver was involved
// (code 1 = yes, 2 = no, 3 = unknown).
func (a Accident) InvolvedAlcohol() bool {
	return a.PositiveBAC == 1
}

// IsWeekend reports whether the crash occurred on a weekend (code 2).
func (a Accident) IsWeekend() bool {
	return a.DayOfWeek == 2
}

// IsNighttime reports whether the crash occurred at night (code 2).
func (a Accident) IsNighttime() bool {
	return a.TimeOfDay == 2
}
