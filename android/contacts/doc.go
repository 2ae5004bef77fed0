// Package contacts turns the flat data rows of an Android-style contacts
// store into typed contact records.
//
// The package exposes one core operation and its supporting pieces:
//
//   - Aggregate: fold (contact id, MIME type, columns...) rows into contacts.
//   - Labeler: resolve phone, email and postal type codes to labels.
//   - SortByGivenName: stable, case-insensitive ordering by given name.
//   - Contact.ToMap / ContactFromMap: the flat key-value form used at the
//     method-channel boundary.
//
// The intended composition model is:
//
//	row source -> Aggregate -> (enrich avatars) -> (sort) -> ToMap
//
// # Aggregation Rules
//
// One Contact is produced per distinct contact id, in first-seen order.
// Every row overwrites the contact's display name and account columns, so the
// last row seen wins. Name, note and organization rows overwrite their
// fields. Phone and email rows append an Item unless the value is blank.
// Postal rows always append. Event rows only matter when they are birthdays.
// Rows of any other MIME type are ignored beyond the overwrite.
//
// Aggregate is pure: it performs no I/O and never fails. Row sources that
// can fail mid-stream are consumed with AggregateRows.
//
// # Labels
//
// In the default mode labels come from a fixed English table ("home",
// "mobile", "fax work", ...). Custom type codes use the row's own label,
// lower-cased, and unlisted codes become "other". Localized mode delegates
// to a Localizer; CatalogLocalizer ships English, French, German and Spanish
// labels built on golang.org/x/text/message.
//
// # Composition Examples
//
// 1) Aggregate rows from a store and order them:
//
//	list, err := contacts.AggregateRows(store.Rows(ctx, sel), contacts.Labeler{})
//	if err != nil {
//		// handle
//	}
//	contacts.SortByGivenName(list)
//
// 2) French labels:
//
//	labeler := contacts.Labeler{
//		Localized: true,
//		Localizer: contacts.NewCatalogLocalizer(language.French),
//	}
//	list := contacts.Aggregate(contacts.Rows(rows), labeler)
//
// 3) Map form round trip:
//
//	m := list[0].ToMap()
//	back := contacts.ContactFromMap(m)
package contacts
