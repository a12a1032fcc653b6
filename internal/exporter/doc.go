// Package exporter writes the pipeline's outputs: the combined dataset and
// metric tables as CSV, a plain-text summary report, and a consolidated
// Excel workbook with one sheet per analysis stage.
package exporter
