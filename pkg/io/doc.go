// Package io reads flower graph records from JSON, YAML and TOML, and writes
// derived results back out.
//
// # Overview
//
// Records are free-form objects; the label and type fields are chosen later
// through a [flower.FieldAccessor]. A document is either a list of records or
// an object holding the list under "records" (or "data"):
//
//	[
//	  {"id": "1", "type": ["a", "b"]},
//	  {"id": "2", "type": ["a"]}
//	]
//
// The same data in YAML:
//
//	records:
//	  - id: "1"
//	    type: [a, b]
//	  - id: "2"
//	    type: [a]
//
// And in TOML, which requires the object form:
//
//	[[records]]
//	id = "1"
//	type = ["a", "b"]
//
// # Formats
//
// [ImportRecords] and [Export] pick the format from the file extension
// (.json, .yaml/.yml, .toml); [ReadRecords] and [Encode] take it explicitly.
//
// # Errors
//
// Decoding failures carry the INVALID_FORMAT code, structural problems
// INVALID_INPUT and missing files FILE_NOT_FOUND (see package errors).
package io
