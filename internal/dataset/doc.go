// Package dataset loads the three FARS auxiliary CSV extracts, validates
// their schemas, removes duplicate key rows, and inner-joins them into the
// single flat crash table the rest of the pipeline consumes.
//
// The working representation between stages is a gota DataFrame; typed
// domain structs are produced on demand via ToRecords. All join, filter,
// and type-inference mechanics are delegated to gota — this package only
// owns column selection, key discipline, and code decoding.
//
// # Source Tables
//
//	ACC_AUX.CSV  one row per fatal crash, keyed by ST_CASE
//	VEH_AUX.CSV  one row per vehicle, keyed by (ST_CASE, VEH_NO)
//	PER_AUX.CSV  one row per person, keyed by (ST_CASE, VEH_NO, PER_NO)
//
// The join is strictly inner: rows without a match in all three tables are
// excluded, and before/after row counts are logged at each step.
package dataset
