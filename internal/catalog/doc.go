// Package catalog owns the ordered category table that drives classification.
//
// A Table maps category names to sets of lowercase extensions. Order matters:
// Classify scans categories in definition order and the first category whose
// set contains the file's extension wins; unmatched files fall into Others.
// Tables come from an extensions.json document (key order preserved), from
// the [[categories]] section of the TOML config, or from the built-in
// defaults, and are immutable once constructed.
package catalog
