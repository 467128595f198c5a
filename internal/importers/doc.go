// Package importers merges browser bookmark exports into the store.
//
// # Architecture
//
// The import pipeline is a strictly ordered, single-pass flow:
//
//	byte stream → netscape.Extractor → Record → Reconcile → store mutation
//
// Reconcile makes one of four decisions per record (insert, update, skip,
// conflict) by comparing the record against the user's existing bookmark for
// the same href. The Importer wraps the whole pass in one store transaction,
// so a batch either applies completely or not at all, and accumulates a Tally
// of the decisions taken.
//
// # Example Usage
//
//	importer := importers.NewImporter(repo)
//	tally, err := importer.Import(file, userID)
//	// tally.Inserted, tally.Updated, tally.Skipped, tally.Conflicted
package importers
