// Package taxonomy builds the tag -> posts association table for a build run
// and derives the tag cloud size classes from it.
//
// The table is built once per run by Aggregate and is read-only afterwards:
// pagers and per-tag pages share it without copying.
package taxonomy
