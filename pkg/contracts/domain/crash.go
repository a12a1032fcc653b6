package domain

// CrashRecord is one flat row of the combined dataset: the inner join of
// an accident, one of its vehicles, and one of that vehicle's occupants.
// Label fields are filled by the dataset decoder; engineered fields by the
// features package.
type CrashRecord struct {
	Accident Accident `json:"accident"`
	Vehicle  Vehicle  `json:"vehicle"`
	Person   Person   `json:"person"`

	// Decoded labels for coded attributes.
	RegionLabel     string `json:"region_label,omitempty"`
	RuralUrbanLabel string `json:"rural_urban_label,omitempty"`
	RoadFuncLabel   string `json:"road_function_label,omitempty"`
	CollisionLabel  string `json:"collision_label,omitempty"`
	BodyTypeLabel   string `json:"body_type_label,omitempty"`
	PersonTypeLabel string `json:"person_type_label,omitempty"`
	InjuryLabel     string `json:"injury_label,omitempty"`

	// Engineered columns.
	AgeBand        string  `json:"age_band,omitempty"`
	BAC            float64 `json:"bac"`
	BACKnown       bool    `json:"bac_known"`
	SpeedingFlag   bool    `json:"speeding_flag"`
	AlcoholFlag    bool    `json:"alcohol_flag"`
	WeekendFlag    bool    `json:"weekend_flag"`
	NightFlag      bool    `json:"night_flag"`
	RolloverFlag   bool    `json:"rollover_flag"`
	RestrainedFlag bool    `json:"restrained_flag"`
}

// Key returns the composite identity of the joined row.
func (r CrashRecord) Key() PersonKey {
	return r.Person.Key()
}

// IsValid reports whether all three sides of the join carry consistent keys.
func (r CrashRecord) IsValid() bool {
	return r.Accident.IsValid() && r.Vehicle.IsValid() && r.Person.IsValid() &&
		r.Accident.STCase == r.Vehicle.STCase &&
		r.Vehicle.STCase == r.Person.STCase &&
		r.Vehicle.VehNo == r.Person.VehNo
}
