package channel

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/spachava753/contactsbridge/android/contacts"
	"github.com/spachava753/contactsbridge/android/provider"
)

func (d *Dispatcher) getContacts(ctx context.Context, raw map[string]any) (any, error) {
	var args queryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return d.pool.run(ctx, func(ctx context.Context) (any, error) {
		return d.fetch(ctx, provider.Selection{DisplayNamePrefix: args.Query}, args)
	})
}

func (d *Dispatcher) getContactsForPhone(ctx context.Context, raw map[string]any) (any, error) {
	var args queryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Phone) == "" {
		return []map[string]any{}, nil
	}
	return d.pool.run(ctx, func(ctx context.Context) (any, error) {
		return d.fetch(ctx, provider.Selection{Phone: args.Phone}, args)
	})
}

func (d *Dispatcher) getContactsForEmail(ctx context.Context, raw map[string]any) (any, error) {
	var args queryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Email) == "" {
		return []map[string]any{}, nil
	}
	return d.pool.run(ctx, func(ctx context.Context) (any, error) {
		return d.fetch(ctx, provider.Selection{Email: args.Email}, args)
	})
}

func (d *Dispatcher) getAvatar(ctx context.Context, raw map[string]any) (any, error) {
	var args avatarArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	c := contacts.ContactFromMap(args.Contact)
	if c.Identifier == "" {
		return nil, nil
	}

	return d.pool.run(ctx, func(ctx context.Context) (any, error) {
		photo, err := d.avatars.Load(ctx, c.Identifier, args.PhotoHighResolution)
		if err != nil {
			return nil, &Error{Code: ErrorCodeAvatarFailed, Message: "could not load the contact photo", Err: err}
		}
		if photo == nil {
			return nil, nil
		}
		return photo, nil
	})
}

func (d *Dispatcher) addContact(ctx context.Context, raw map[string]any) (any, error) {
	c := contacts.ContactFromMap(raw)
	id, err := d.store.AddContact(ctx, c)
	if err != nil {
		return nil, &Error{Code: ErrorCodeAddFailed, Message: "Failed to add the contact", Err: err}
	}
	d.log.Infow("contact added", "identifier", id)
	return nil, nil
}

func (d *Dispatcher) updateContact(ctx context.Context, raw map[string]any) (any, error) {
	c := contacts.ContactFromMap(raw)
	if err := d.validate.Struct(identified{Identifier: c.Identifier}); err != nil {
		return nil, &Error{Code: ErrorCodeUpdateFailed, Message: "Failed to update the contact, make sure it has a valid identifier", Err: err}
	}
	if err := d.store.UpdateContact(ctx, c); err != nil {
		return nil, &Error{Code: ErrorCodeUpdateFailed, Message: "Failed to update the contact, make sure it has a valid identifier", Err: err}
	}
	return nil, nil
}

func (d *Dispatcher) deleteContact(ctx context.Context, raw map[string]any) (any, error) {
	c := contacts.ContactFromMap(raw)
	if err := d.validate.Struct(identified{Identifier: c.Identifier}); err != nil {
		return nil, &Error{Code: ErrorCodeDeleteFailed, Message: "Failed to delete the contact, make sure it has a valid identifier", Err: err}
	}
	if err := d.store.DeleteContact(ctx, c.Identifier); err != nil {
		return nil, &Error{Code: ErrorCodeDeleteFailed, Message: "Failed to delete the contact, make sure it has a valid identifier", Err: err}
	}
	return nil, nil
}

func (d *Dispatcher) openExistingContact(ctx context.Context, raw map[string]any) (any, error) {
	var args formArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if d.picker == nil {
		return FormCouldNotBeOpen, nil
	}

	c := contacts.ContactFromMap(args.Contact)
	if err := d.validate.Struct(identified{Identifier: c.Identifier}); err != nil {
		return FormCouldNotBeOpen, nil
	}
	existing, err := d.contact(ctx, c.Identifier, args.LocalizedLabels)
	if err != nil || existing == nil {
		return FormCouldNotBeOpen, nil
	}

	return d.formResult(ctx, MethodOpenExistingContact, func(ctx context.Context) (string, error) {
		return d.picker.OpenExistingContact(ctx, c.Identifier)
	}, args.LocalizedLabels)
}

func (d *Dispatcher) openContactForm(ctx context.Context, raw map[string]any) (any, error) {
	var args formArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if d.picker == nil {
		return FormCouldNotBeOpen, nil
	}
	return d.formResult(ctx, MethodOpenContactForm, d.picker.OpenContactForm, args.LocalizedLabels)
}

func (d *Dispatcher) openDeviceContactPicker(ctx context.Context, raw map[string]any) (any, error) {
	var args formArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if d.picker == nil {
		return FormCouldNotBeOpen, nil
	}

	id, code := d.runPicker(ctx, MethodOpenDeviceContactPicker, d.picker.PickContact)
	if code != 0 {
		return code, nil
	}
	return d.fetch(ctx, provider.Selection{ContactID: id}, queryArgs{LocalizedLabels: args.LocalizedLabels})
}

// formResult runs a form and answers with the resulting contact map, or
// FormOperationCanceled when the form produced no readable contact.
func (d *Dispatcher) formResult(ctx context.Context, method string, open func(context.Context) (string, error), localized *bool) (any, error) {
	id, code := d.runPicker(ctx, method, open)
	if code != 0 {
		return code, nil
	}

	c, err := d.contact(ctx, id, localized)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return FormOperationCanceled, nil
	}
	return c, nil
}

// runPicker returns the picked identifier, or a non-zero form code.
func (d *Dispatcher) runPicker(ctx context.Context, method string, open func(context.Context) (string, error)) (string, int) {
	id, err := open(ctx)
	switch {
	case errors.Is(err, ErrCanceled):
		return "", FormOperationCanceled
	case err != nil:
		d.log.Warnw("could not open contact UI", "method", method, "error", err)
		return "", FormCouldNotBeOpen
	case strings.TrimSpace(id) == "":
		return "", FormOperationCanceled
	}
	return id, 0
}

// contact returns the map form of one contact, or nil when it does not exist.
func (d *Dispatcher) contact(ctx context.Context, identifier string, localized *bool) (map[string]any, error) {
	list, err := d.fetch(ctx, provider.Selection{ContactID: identifier}, queryArgs{LocalizedLabels: localized})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// fetch aggregates the selected rows, then enriches and orders them as args
// ask.
func (d *Dispatcher) fetch(ctx context.Context, sel provider.Selection, args queryArgs) ([]map[string]any, error) {
	list, err := contacts.AggregateRows(d.store.Rows(ctx, sel), d.labeler(args.LocalizedLabels))
	if err != nil {
		return nil, &Error{Code: ErrorCodeQueryFailed, Message: "could not read contacts", Err: err}
	}

	if args.WithThumbnails {
		for i := range list {
			photo, err := d.avatars.Load(ctx, list[i].Identifier, args.PhotoHighResolution)
			if err != nil {
				d.log.Warnw("skipping contact photo", "identifier", list[i].Identifier, "error", err)
				continue
			}
			list[i].Avatar = photo
		}
	}
	if args.OrderByGivenName {
		contacts.SortByGivenName(list)
	}
	return contacts.ToMaps(list), nil
}

func (d *Dispatcher) labeler(localized *bool) contacts.Labeler {
	l := contacts.Labeler{Localized: d.localizedLabels, Localizer: d.localizer}
	if localized != nil {
		l.Localized = *localized
	}
	return l
}
