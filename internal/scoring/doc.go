// Package scoring computes text similarity between the edits of a dataset.
//
// Within every series edited in at least two tongues, the current edits of
// each tongue are compared pairwise (factor 0) and the edits of the first
// tongue are compared with those of the others (factor 1). Each comparison
// yields the four metrics of the similarity package; a result row holds one
// list per metric.
package scoring
