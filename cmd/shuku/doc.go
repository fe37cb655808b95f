// Package main hosts the shuku CLI entrypoint.
//
// The Cobra-based command translates terminal invocations into pipeline
// runs: input discovery, configuration resolution, logging setup, and the
// interactive prompts for track choice and existing-file conflicts. The
// heavy lifting lives in the internal packages; this one stays declarative.
package main
