package domain

// Vehicle represents one vehicle-level row from the FARS VEH_AUX extract.
type Vehicle struct {
	STCase         int `json:"st_case" csv:"ST_CASE" validate:"required,min=1"`
	VehNo          int `json:"veh_no" csv:"VEH_NO" validate:"required,min=1"`
	BodyType       int `json:"body_type" csv:"A_BODY"`
	InitialImpact  int `json:"initial_impact" csv:"A_IMP1"`
	Rollover       int `json:"rollover" csv:"A_VROLL"`
	LicenseState   int `json:"license_state" csv:"A_LIC_S"`
	SpecialVehicle int `json:"special_vehicle" csv:"A_SPVEH"`
	ModelYearClass int `json:"model_year_class" csv:"A_MOD_YR"`
	FireExplosion  int `json:"fire_explosion" csv:"A_FIRE_EXP"`
}

// VehicleKey identifies a vehicle within a crash.
type VehicleKey struct {
	STCase int
	VehNo  int
}

// Key returns the composite join key for the vehicle table.
func (v Vehicle) Key() VehicleKey {
	return VehicleKey{STCase: v.STCase, VehNo: v.VehNo}
}

// IsValid reports whether the row carries a usable composite key.
func (v Vehicle) IsValid() bool {
	return v.STCase > 0 && v.VehNo > 0
}

// RolledOver reports whether the vehicle rolled over (code 1 = yes).
func (v Vehicle) RolledOver() bool {
	return v.Rollover == 1
}
