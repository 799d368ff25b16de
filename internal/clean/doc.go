// Package clean prepares a scraped edit database for dataset building: it
// groups language versions into series, attributes authors to a country and
// language, and flags the edits that are meaningful.
package clean
