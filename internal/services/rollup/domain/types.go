// Package domain defines the rollup core types and interfaces
package domain

// Agg is one (kind, category, severity) flag count for a day
type Agg struct {
	Kind     string
	Category string
	Severity string
	N        int64
}
