package provider

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/spachava753/contactsbridge/android/contacts"
)

// replacedMimeTypes are the data kinds UpdateContact rewrites wholesale.
var replacedMimeTypes = []string{
	contacts.MimeTypeStructuredName,
	contacts.MimeTypeNote,
	contacts.MimeTypeOrganization,
	contacts.MimeTypePhone,
	contacts.MimeTypeEmail,
	contacts.MimeTypeStructuredPostal,
}

// AddContact inserts c as a new contact with one raw contact and its data
// rows, in one transaction, and returns the new contact identifier.
// c.Identifier is ignored.
func (p *Provider) AddContact(ctx context.Context, c contacts.Contact) (string, error) {
	ops := []*Operation{
		NewInsert(TableContacts).
			WithValue(ColumnDisplayName, nullable(c.ComputedDisplayName())),
		NewInsert(TableRawContacts).
			WithValueBackReference(ColumnContactID, 0).
			WithValue(ColumnAccountType, nullable(c.AccountType)).
			WithValue(ColumnAccountName, nullable(c.AccountName)),
	}
	ops = append(ops, dataInserts(c, func(op *Operation) *Operation {
		return op.WithValueBackReference(ColumnRawContactID, 1)
	})...)

	results, err := p.ApplyBatch(ctx, ops)
	if err != nil {
		return "", errors.Wrap(err, "provider: adding contact failed")
	}

	id := strconv.FormatInt(results[0].ID, 10)
	p.log.Infow("added contact", "identifier", id, "data_rows", len(ops)-2)
	return id, nil
}

// UpdateContact replaces the name, note, organization, phone, email, postal
// and birthday data of the contact identified by c.Identifier and refreshes
// its display name. The photo is replaced only when c.Avatar is set. It
// returns ErrNotFound when the contact has no raw contact.
func (p *Provider) UpdateContact(ctx context.Context, c contacts.Contact) error {
	rawID, err := p.rawContactID(ctx, c.Identifier)
	if err != nil {
		return err
	}

	ops := []*Operation{
		NewDelete(TableData).WithSelection(
			ColumnRawContactID+" = ? AND "+ColumnMimeType+" IN ("+placeholders(len(replacedMimeTypes))+")",
			append([]any{rawID}, stringsToArgs(replacedMimeTypes)...)...),
		NewDelete(TableData).WithSelection(
			ColumnRawContactID+" = ? AND "+ColumnMimeType+" = ? AND "+DataColumn(eventType)+" = ?",
			rawID, contacts.MimeTypeEvent, strconv.Itoa(contacts.EventTypeBirthday)),
	}
	if len(c.Avatar) > 0 {
		ops = append(ops, NewDelete(TableData).WithSelection(
			ColumnRawContactID+" = ? AND "+ColumnMimeType+" = ?", rawID, contacts.MimeTypePhoto))
	}
	ops = append(ops, dataInserts(c, func(op *Operation) *Operation {
		return op.WithValue(ColumnRawContactID, rawID)
	})...)
	ops = append(ops, NewUpdate(TableContacts).
		WithValue(ColumnDisplayName, nullable(c.ComputedDisplayName())).
		WithSelection(ColumnID+" = ?", c.Identifier))

	if _, err := p.ApplyBatch(ctx, ops); err != nil {
		return errors.Wrap(err, "provider: updating contact failed")
	}
	p.log.Infow("updated contact", "identifier", c.Identifier)
	return nil
}

// DeleteContact deletes the contact and, by cascade, its raw contacts and
// data rows. It returns ErrNotFound when nothing was deleted.
func (p *Provider) DeleteContact(ctx context.Context, identifier string) error {
	id, err := parseIdentifier(identifier)
	if err != nil {
		return err
	}

	results, err := p.ApplyBatch(ctx, []*Operation{
		NewDelete(TableContacts).WithSelection(ColumnID+" = ?", id),
	})
	if err != nil {
		return errors.Wrap(err, "provider: deleting contact failed")
	}
	if results[0].Count == 0 {
		return errors.Wrapf(ErrNotFound, "contact %s", identifier)
	}
	p.log.Infow("deleted contact", "identifier", identifier)
	return nil
}

// Photo returns the stored photo of the contact, or ErrNotFound when it has
// none.
func (p *Provider) Photo(ctx context.Context, identifier string) ([]byte, error) {
	id, err := parseIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	var photo []byte
	err = p.db.QueryRowContext(ctx, `SELECT d.data15
FROM data d
JOIN raw_contacts rc ON rc._id = d.raw_contact_id
WHERE rc.contact_id = ? AND rc.deleted = 0 AND d.mimetype = ? AND d.data15 IS NOT NULL
ORDER BY d._id DESC
LIMIT 1`, id, contacts.MimeTypePhoto).Scan(&photo)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && len(photo) == 0) {
		return nil, errors.Wrapf(ErrNotFound, "photo for contact %s", identifier)
	}
	if err != nil {
		return nil, errors.Wrap(err, "provider: reading photo failed")
	}
	return photo, nil
}

func (p *Provider) rawContactID(ctx context.Context, identifier string) (int64, error) {
	id, err := parseIdentifier(identifier)
	if err != nil {
		return 0, err
	}

	var rawID int64
	err = p.db.QueryRowContext(ctx,
		`SELECT _id FROM raw_contacts WHERE contact_id = ? AND deleted = 0 ORDER BY _id LIMIT 1`, id).Scan(&rawID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrapf(ErrNotFound, "raw contact for contact %s", identifier)
	}
	if err != nil {
		return 0, errors.Wrap(err, "provider: resolving raw contact failed")
	}
	return rawID, nil
}

// dataInserts builds the data row inserts for c. bind attaches the raw
// contact id to each insert.
func dataInserts(c contacts.Contact, bind func(*Operation) *Operation) []*Operation {
	var ops []*Operation
	insert := func(mimeType string) *Operation {
		op := bind(NewInsert(TableData).WithValue(ColumnMimeType, mimeType))
		ops = append(ops, op)
		return op
	}

	insert(contacts.MimeTypeStructuredName).
		WithValue(DataColumn(nameDisplay), nullable(c.ComputedDisplayName())).
		WithValue(DataColumn(nameGiven), nullable(c.GivenName)).
		WithValue(DataColumn(nameFamily), nullable(c.FamilyName)).
		WithValue(DataColumn(namePrefix), nullable(c.Prefix)).
		WithValue(DataColumn(nameMiddle), nullable(c.MiddleName)).
		WithValue(DataColumn(nameSuffix), nullable(c.Suffix))

	if c.Note != "" {
		insert(contacts.MimeTypeNote).WithValue(DataColumn(noteText), c.Note)
	}
	if c.Company != "" || c.JobTitle != "" {
		insert(contacts.MimeTypeOrganization).
			WithValue(DataColumn(orgCompany), nullable(c.Company)).
			WithValue(DataColumn(orgTitle), nullable(c.JobTitle))
	}
	for _, phone := range c.Phones {
		if strings.TrimSpace(phone.Value) == "" {
			continue
		}
		insertItem(insert(contacts.MimeTypePhone), phone)
	}
	for _, email := range c.Emails {
		if strings.TrimSpace(email.Value) == "" {
			continue
		}
		insertItem(insert(contacts.MimeTypeEmail), email)
	}
	for _, address := range c.PostalAddresses {
		insert(contacts.MimeTypeStructuredPostal).
			WithValue(DataColumn(postalFormatted), nullable(formatAddress(address))).
			WithValue(DataColumn(postalType), strconv.Itoa(storedType(address.Type))).
			WithValue(DataColumn(postalLabel), nullable(address.Label)).
			WithValue(DataColumn(postalStreet), nullable(address.Street)).
			WithValue(DataColumn(postalCity), nullable(address.City)).
			WithValue(DataColumn(postalRegion), nullable(address.Region)).
			WithValue(DataColumn(postalPostcode), nullable(address.Postcode)).
			WithValue(DataColumn(postalCountry), nullable(address.Country))
	}
	if c.Birthday != "" {
		insert(contacts.MimeTypeEvent).
			WithValue(DataColumn(eventStart), c.Birthday).
			WithValue(DataColumn(eventType), strconv.Itoa(contacts.EventTypeBirthday))
	}
	if len(c.Avatar) > 0 {
		insert(contacts.MimeTypePhoto).WithValue(ColumnPhoto, c.Avatar)
	}
	return ops
}

func insertItem(op *Operation, item contacts.Item) {
	op.WithValue(DataColumn(itemValue), item.Value).
		WithValue(DataColumn(itemType), strconv.Itoa(storedType(item.Type))).
		WithValue(DataColumn(itemLabel), nullable(item.Label))
}

// storedType maps the -1 "unknown" code of the map form to custom.
func storedType(code int) int {
	if code < 0 {
		return 0
	}
	return code
}

func formatAddress(a contacts.PostalAddress) string {
	var parts []string
	for _, part := range []string{a.Street, a.City, strings.TrimSpace(a.Region + " " + a.Postcode), a.Country} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func parseIdentifier(identifier string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(identifier), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrNotFound, "invalid contact identifier %q", identifier)
	}
	return id, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func stringsToArgs(values []string) []any {
	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, v)
	}
	return args
}
