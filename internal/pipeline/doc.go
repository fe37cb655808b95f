// Package pipeline drives the per-file condensation run: probing, track
// and subtitle selection, plan building, and output production. Batch runs
// process independent files concurrently; one file's failure never aborts
// the rest.
package pipeline
