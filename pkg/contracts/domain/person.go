package domain

// Sentinel codes used by FARS for missing or unknown numeric values.
const (
	// AgeUnknown marks ages coded 998 (not reported) or 999 (unknown).
	AgeNotReported = 998
	AgeUnknown     = 999

	// Alcohol test result codes above the measurable BAC range.
	AlcoholTestNotGiven = 95
	AlcoholTestUnknown  = 99
)

// Person represents one person-level row from the FARS PER_AUX extract.
type Person struct {
	STCase        int `json:"st_case" csv:"ST_CASE" validate:"required,min=1"`
	VehNo         int `json:"veh_no" csv:"VEH_NO"`
	PerNo         int `json:"per_no" csv:"PER_NO" validate:"required,min=1"`
	Age           int `json:"age" csv:"AGE"`
	PersonType    int `json:"person_type" csv:"A_PTYPE"`
	Restraint     int `json:"restraint" csv:"A_RESTUSE"`
	Ejection      int `json:"ejection" csv:"A_EJECT"`
	Injury        int `json:"injury" csv:"A_PERINJ"`
	AlcoholTest   int `json:"alcohol_test" csv:"A_ALCTES"`
	DeadOnArrival int `json:"dead_on_arrival" csv:"A_DOA"`
}

// PersonKey identifies a person within a crash.
type PersonKey struct {
	STCase int
	VehNo  int
	PerNo  int
}

// Key returns the composite join key for the person table.
func (p Person) Key() PersonKey {
	return PersonKey{STCase: p.STCase, VehNo: p.VehNo, PerNo: p.PerNo}
}

// IsValid reports whether the row carries a usable composite key.
// VehNo may be 0 for non-motorists (pedestrians, cyclists).
func (p Person) IsValid() bool {
	return p.STCase > 0 && p.PerNo > 0 && p.VehNo >= 0
}

// HasKnownAge reports whether the age field holds a real age rather
// than a sentinel code.
func (p Person) HasKnownAge() bool {
	return p.Age >= 0 && p.Age < AgeNotReported
}

// BAC returns the measured blood alcohol content and whether a usable
// test result is present. Codes 0-94 encode BAC in hundredths of a
// percent; 95 and above mean no test or unknown result.
func (p Person) BAC() (float64, bool) {
	if p.AlcoholTest < 0 || p.AlcoholTest >= AlcoholTestNotGiven {
		return 0, false
	}
	return float64(p.AlcoholTest) / 100.0, true
}
