package dataset

// Label maps for the coded categorical fields of the FARS auxiliary files.
// Codes outside a map's domain decode to "Unknown" rather than failing;
// the source data occasionally carries reserved or not-reported codes.

const labelUnknown = "Unknown"

// regionLabels decodes A_REGION (NHTSA region).
var regionLabels = map[int]string{
	1:  "Northeast",
	2:  "Mid-Atlantic",
	3:  "Southeast",
	4:  "Great Lakes",
	5:  "South Central",
	6:  "Central",
	7:  "Mountain",
	8:  "Northwest",
	9:  "Pacific",
	10: "Outlying Areas",
}

// ruralUrbanLabels decodes A_RU.
var ruralUrbanLabels = map[int]string{
	1: "Rural",
	2: "Urban",
}

// timeOfDayLabels decodes A_TOD.
var timeOfDayLabels = map[int]string{
	1: "Daytime",
	2: "Nighttime",
}

// dayOfWeekLabels decodes A_DOW.
var dayOfWeekLabels = map[int]string{
	1: "Weekday",
	2: "Weekend",
}

// crashTypeLabels decodes A_CT.
var crashTypeLabels = map[int]string{
	1: "Single-Vehicle",
	2: "Two-Vehicle",
	3: "Multi-Vehicle",
}

// roadFunctionLabels decodes A_ROADFC.
var roadFunctionLabels = map[int]string{
	1: "Interstate",
	2: "Freeway or Expressway",
	3: "Principal Arterial",
	4: "Minor Arterial",
	5: "Collector",
	6: "Local Road",
}

// collisionLabels decodes A_MANCOL.
var collisionLabels = map[int]string{
	1: "Not Collision with Motor Vehicle",
	2: "Rear-End",
	3: "Head-On",
	4: "Angle",
	5: "Sideswipe",
	6: "Other Collision",
}

// bodyTypeLabels decodes A_BODY.
var bodyTypeLabels = map[int]string{
	1: "Passenger Car",
	2: "Light Truck - Pickup",
	3: "Light Truck - Utility",
	4: "Light Truck - Van",
	5: "Light Truck - Other",
	6: "Large Truck",
	7: "Motorcycle",
	8: "Bus",
	9: "Other Vehicle",
}

// personTypeLabels decodes A_PTYPE.
var personTypeLabels = map[int]string{
	1: "Driver",
	2: "Occupant",
	3: "Pedestrian",
	4: "Pedalcyclist",
	5: "Other Nonmotorist",
}

// injuryLabels decodes A_PERINJ.
var injuryLabels = map[int]string{
	1: "Fatal",
	2: "Incapacitating",
	3: "Non-Incapacitating",
	4: "Possible Injury",
	5: "No Injury",
	6: "Injured - Severity Unknown",
}

// restraintLabels decodes A_RESTUSE.
var restraintLabels = map[int]string{
	1: "Restrained",
	2: "Unrestrained",
	3: "Unknown Restraint Use",
}

// decode maps a code through its label map, falling back to "Unknown".
func decode(labels map[int]string, code int) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return labelUnknown
}

// DecodeRegion returns the label for an A_REGION code.
func DecodeRegion(code int) string { return decode(regionLabels, code) }

// DecodeRuralUrban returns the label for an A_RU code.
func DecodeRuralUrban(code int) string { return decode(ruralUrbanLabels, code) }

// DecodeTimeOfDay returns the label for an A_TOD code.
func DecodeTimeOfDay(code int) string { return decode(timeOfDayLabels, code) }

// DecodeDayOfWeek returns the label for an A_DOW code.
func DecodeDayOfWeek(code int) string { return decode(dayOfWeekLabels, code) }

// DecodeCrashType returns the label for an A_CT code.
func DecodeCrashType(code int) string { return decode(crashTypeLabels, code) }

// DecodeRoadFunction returns the label for an A_ROADFC code.
func DecodeRoadFunction(code int) string { return decode(roadFunctionLabels, code) }

// DecodeCollision returns the label for an A_MANCOL code.
func DecodeCollision(code int) string { return decode(collisionLabels, code) }

// DecodeBodyType returns the label for an A_BODY code.
func DecodeBodyType(code int) string { return decode(bodyTypeLabels, code) }

// DecodePersonType returns the label for an A_PTYPE code.
func DecodePersonType(code int) string { return decode(personTypeLabels, code) }

// DecodeInjury returns the label for an A_PERINJ code.
func DecodeInjury(code int) string { return decode(injuryLabels, code) }

// DecodeRestraint returns the label for an A_RESTUSE code.
func DecodeRestraint(code int) string { return decode(restraintLabels, code) }
