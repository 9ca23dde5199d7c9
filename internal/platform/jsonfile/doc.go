// Package jsonfile implements the store interfaces on top of flat JSON
// document files, one file per collection.
//
// This is deliberately a whole-collection read-modify-write store, not a
// per-record store: every mutation re-reads and re-writes the entire
// collection under that collection's mutex. That bounds scalability but
// guarantees each operation sees and produces a single consistent view,
// which is the contract the service layer depends on.
package jsonfile
