// Package store reads and updates the edit database produced by the
// Wikipedia revision scraper.
//
// The database holds four tables: articles (one row per language version,
// linked to the English parent through parent_id), revisions, edits and
// authors. The cleaning stage adds articles.series, authors.usertype,
// authors.iso and edits.flag; EnsureCleaningColumns adds whichever of them
// are missing.
package store
