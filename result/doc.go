// Package result holds what an analysis produces for its host: a feature
// map, body text blobs, and extracted child artifacts.
package result
