// Package channel dispatches named method calls with loosely typed
// arguments to the contacts store, the way a platform method channel does.
//
// Methods:
//
//   - getContacts, getContactsForPhone, getContactsForEmail: list contacts
//     in map form, optionally with thumbnails and ordered by given name.
//   - getAvatar: the PNG photo of one contact, or nil.
//   - addContact, updateContact, deleteContact: batched writes.
//   - openExistingContact, openContactForm, openDeviceContactPicker:
//     interactive flows through a Picker, answering a contact, a list or
//     one of the form codes.
//
// Get methods and getAvatar run on a bounded executor (10 workers and a
// queue of 1000 by default). When the queue is full the call fails with
// ErrQueueFull instead of blocking.
//
// Failures visible to callers are *Error values carrying an ErrorCode.
// Unknown methods return ErrNotImplemented.
package channel
