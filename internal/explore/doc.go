// Package explore produces the descriptive-statistics layer of the
// pipeline: per-column numeric summaries, categorical frequency tables
// over the decoded labels, crosstabs, and group means. All distribution
// math is delegated to gonum/stat.
package explore
