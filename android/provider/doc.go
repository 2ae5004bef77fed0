// Package provider is a SQLite contacts store laid out like the Android
// contacts provider: contacts, raw_contacts and generic data rows keyed by
// MIME type.
//
// It plays three roles around the aggregator in package contacts:
//
//   - Row source: Rows yields flat contacts.FieldRow values for a Selection.
//   - Mutation sink: ApplyBatch runs insert/update/delete Operations in one
//     transaction; AddContact, UpdateContact and DeleteContact are built on it.
//   - Photo source: Photo returns a contact's stored photo blob.
//
// # Data Layout
//
// Each data row stores its values in generic columns data1..data10 whose
// meaning depends on the MIME type. data1 holds the number of a phone row,
// the address of an email row and the display name of a name row; a name
// row keeps the given name in data2. Photos live in data15. Type codes are
// stored as decimal text.
//
// # Selections
//
// The zero Selection reads every row of the seven readable kinds. A display
// name prefix reads every row of matching contacts. Phone and email
// selections first resolve owning contact ids (phones match on digits, or
// on at least seven shared trailing digits) and then read all their rows.
//
// # Errors
//
// Missing contacts and photos wrap ErrNotFound. Other failures are wrapped
// with github.com/pkg/errors and carry a "provider:" prefix.
package provider
