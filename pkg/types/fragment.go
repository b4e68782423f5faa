// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the RFP eligibility
// pipeline: fragments, match records, scores, and configuration.
package types

// SourceType identifies which side of the comparison a fragment came from.
type SourceType string

const (
	// SourceRFP marks fragments extracted from the solicitation document.
	SourceRFP SourceType = "rfp"

	// SourceCompany marks fragments extracted from the company profile.
	SourceCompany SourceType = "company"
)

// Valid reports whether the source type is one of the known values.
func (s SourceType) Valid() bool {
	return s == SourceRFP || s == SourceCompany
}

// Fragment is a unit of extracted document text, the atom of comparison.
// Fragments are immutable once produced by the chunking step.
type Fragment struct {
	// Text is the fragment content.
	Text string `json:"text" yaml:"text"`

	// SourceType records whether the fragment belongs to the RFP or the
	// company profile.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// DocumentID identifies the source document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// SequenceIndex is the fragment's position within its document.
	SequenceIndex int `json:"sequence_index" yaml:"sequence_index"`
}
