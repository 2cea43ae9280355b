// Package services implements the pipeline's business logic: building
// the section model from source rows, publishing whole documents,
// materialising and ingesting per-section artifacts, reconciling
// duplicates, and the fiqh card extraction flow. Services depend only
// on the driven ports; all execution is sequential.
package services
