// Package contactsbridge is a lightweight index for the subpackages in this module.
//
// This root package is documentation-only. Import specific subpackages to use
// concrete helpers.
//
// Available subpackages:
//   - github.com/spachava753/contactsbridge/android/contacts
//     Contact model, row aggregation, labels, ordering and the map form.
//   - github.com/spachava753/contactsbridge/android/provider
//     SQLite contacts store with the provider's table layout and batches.
//   - github.com/spachava753/contactsbridge/android/avatar
//     Photo thumbnails and PNG encoding.
//   - github.com/spachava753/contactsbridge/channel
//     Method-call dispatcher answering the contacts plugin methods.
//   - github.com/spachava753/contactsbridge/server
//     HTTP transport for the dispatcher.
//   - github.com/spachava753/contactsbridge/cmd
//     The contactsbridge command line.
//
// Discovery workflow for agents:
//   - Run: go doc github.com/spachava753/contactsbridge
//   - Then drill in with:
//     go doc github.com/spachava753/contactsbridge/android/contacts
//     go doc github.com/spachava753/contactsbridge/channel
package contactsbridge
