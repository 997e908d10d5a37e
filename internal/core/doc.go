// Package core loads the CSV-backed tables shown on conference pages.
//
// This package has no UI or transport dependencies. Template helpers,
// the preview server and the CLI all call into it with whatever
// attachments their content tree provides.
//
// # Pipeline
//
// Every table goes through the same three steps:
//
//  1. [Parse] reads one attachment into ordered [Row] values, skipping a
//     UTF-8 BOM and dropping undecodable bytes.
//  2. [Classify] wraps the rows in a [Table]. When organizing is requested
//     and some row carries a theme or track, the table is [KindGrouped]
//     and its rows are also partitioned into [Group] values.
//  3. [LoadCollection] picks the keynotes, tutorials and papers
//     attachments of a page and orders them by kind priority.
//
// # Kind Registry
//
// Table kinds are registered at init time using [RegisterKind]:
//
//	core.RegisterKind(core.KindDefinition{
//	    Key:      "papers",
//	    Token:    "papers.csv",
//	    Title:    "Accepted Papers",
//	    Priority: 3,
//	    Organize: true,
//	})
//
// Import internal/core/tables to register the conference kinds.
//
// # Error Handling
//
// A source that cannot be opened fails with [ErrSourceUnavailable].
// Short rows are not errors. Technical errors are mapped to user-facing
// messages with [MapError].
package core
