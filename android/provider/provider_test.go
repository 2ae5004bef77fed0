package provider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"github.com/spachava753/contactsbridge/android/contacts"
)

func openTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := Open(context.Background(), filepath.Join(t.TempDir(), "contacts.db"))
	be.Err(t, err, nil)
	t.Cleanup(func() { p.Close() })
	return p
}

func ann() contacts.Contact {
	return contacts.Contact{
		GivenName:   "Ann",
		FamilyName:  "Lee",
		Company:     "Acme",
		JobTitle:    "CTO",
		Note:        "met at conf",
		Birthday:    "1990-05-17",
		AccountType: "com.google",
		AccountName: "ann@gmail.com",
		Phones: []contacts.Item{
			{Label: "mobile", Value: "+1 (555) 123-4567", Type: contacts.PhoneTypeMobile},
			{Label: "boat", Value: "555-9999", Type: contacts.PhoneTypeCustom},
		},
		Emails: []contacts.Item{{Label: "work", Value: "Ann@Acme.example", Type: contacts.EmailTypeWork}},
		PostalAddresses: []contacts.PostalAddress{{
			Street: "1 Main St", City: "Springfield", Postcode: "12345", Region: "IL", Country: "US",
			Type: contacts.PostalTypeHome,
		}},
	}
}

func bob() contacts.Contact {
	return contacts.Contact{
		GivenName: "Bob",
		Phones:    []contacts.Item{{Value: "555-0000", Type: contacts.PhoneTypeHome}},
	}
}

func query(t *testing.T, p *Provider, sel Selection) []contacts.Contact {
	t.Helper()
	list, err := contacts.AggregateRows(p.Rows(context.Background(), sel), contacts.Labeler{})
	be.Err(t, err, nil)
	return list
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	be.True(t, err != nil)
}

func TestAddAndQuery(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	id, err := p.AddContact(ctx, ann())
	be.Err(t, err, nil)
	be.True(t, id != "")

	list := query(t, p, Selection{})
	be.Equal(t, len(list), 1)

	got := list[0]
	be.Equal(t, got.Identifier, id)
	be.Equal(t, got.DisplayName, "Ann Lee")
	be.Equal(t, got.GivenName, "Ann")
	be.Equal(t, got.FamilyName, "Lee")
	be.Equal(t, got.Company, "Acme")
	be.Equal(t, got.JobTitle, "CTO")
	be.Equal(t, got.Note, "met at conf")
	be.Equal(t, got.Birthday, "1990-05-17")
	be.Equal(t, got.AccountType, "com.google")
	be.Equal(t, got.AccountName, "ann@gmail.com")
	be.Equal(t, got.Phones, []contacts.Item{
		{Label: "mobile", Value: "+1 (555) 123-4567", Type: contacts.PhoneTypeMobile},
		{Label: "boat", Value: "555-9999", Type: contacts.PhoneTypeCustom},
	})
	be.Equal(t, got.Emails, []contacts.Item{{Label: "work", Value: "Ann@Acme.example", Type: contacts.EmailTypeWork}})
	be.Equal(t, got.PostalAddresses, []contacts.PostalAddress{{
		Label: "home", Street: "1 Main St", City: "Springfield", Postcode: "12345", Region: "IL", Country: "US",
		Type: contacts.PostalTypeHome,
	}})
}

func TestQueryByDisplayNamePrefixAndID(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	annID, err := p.AddContact(ctx, ann())
	be.Err(t, err, nil)
	bobID, err := p.AddContact(ctx, bob())
	be.Err(t, err, nil)

	list := query(t, p, Selection{DisplayNamePrefix: "bo"})
	be.Equal(t, len(list), 1)
	be.Equal(t, list[0].Identifier, bobID)

	list = query(t, p, Selection{ContactID: annID})
	be.Equal(t, len(list), 1)
	be.Equal(t, list[0].GivenName, "Ann")

	list = query(t, p, Selection{DisplayNamePrefix: "Ann", ContactID: bobID})
	be.Equal(t, len(list), 0)

	list = query(t, p, Selection{DisplayNamePrefix: "%"})
	be.Equal(t, len(list), 0)
}

func TestQueryByPhone(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	annID, err := p.AddContact(ctx, ann())
	be.Err(t, err, nil)
	_, err = p.AddContact(ctx, bob())
	be.Err(t, err, nil)

	list := query(t, p, Selection{Phone: "555 123 4567"})
	be.Equal(t, len(list), 1)
	be.Equal(t, list[0].Identifier, annID)
	be.Equal(t, len(list[0].Emails), 1)

	list = query(t, p, Selection{Phone: "5550000"})
	be.Equal(t, len(list), 1)
	be.Equal(t, list[0].GivenName, "Bob")

	be.Equal(t, len(query(t, p, Selection{Phone: "0000"})), 0)
	be.Equal(t, len(query(t, p, Selection{Phone: "---"})), 0)
}

func TestQueryByEmail(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	_, err := p.AddContact(ctx, ann())
	be.Err(t, err, nil)
	_, err = p.AddContact(ctx, bob())
	be.Err(t, err, nil)

	list := query(t, p, Selection{Email: "acme.EXAMPLE"})
	be.Equal(t, len(list), 1)
	be.Equal(t, list[0].GivenName, "Ann")
	be.Equal(t, len(list[0].Phones), 2)

	be.Equal(t, len(query(t, p, Selection{Email: "nobody"})), 0)
}

func TestUpdateContact(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	id, err := p.AddContact(ctx, ann())
	be.Err(t, err, nil)

	changed := ann()
	changed.Identifier = id
	changed.GivenName = "Anna"
	changed.Note = ""
	changed.Phones = []contacts.Item{{Value: "555-7777", Type: contacts.PhoneTypeWork}}
	changed.Birthday = ""
	be.Err(t, p.UpdateContact(ctx, changed), nil)

	list := query(t, p, Selection{ContactID: id})
	be.Equal(t, len(list), 1)
	be.Equal(t, list[0].GivenName, "Anna")
	be.Equal(t, list[0].DisplayName, "Anna Lee")
	be.Equal(t, list[0].Note, "")
	be.Equal(t, list[0].Birthday, "")
	be.Equal(t, list[0].Phones, []contacts.Item{{Label: "work", Value: "555-7777", Type: contacts.PhoneTypeWork}})
	be.Equal(t, list[0].AccountName, "ann@gmail.com")
}

func TestUpdateContactNotFound(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	be.Err(t, p.UpdateContact(ctx, contacts.Contact{Identifier: "99"}), ErrNotFound)
	be.Err(t, p.UpdateContact(ctx, contacts.Contact{}), ErrNotFound)
	be.Err(t, p.UpdateContact(ctx, contacts.Contact{Identifier: "abc"}), ErrNotFound)
}

func TestDeleteContact(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	annID, err := p.AddContact(ctx, ann())
	be.Err(t, err, nil)
	_, err = p.AddContact(ctx, bob())
	be.Err(t, err, nil)

	be.Err(t, p.DeleteContact(ctx, annID), nil)
	list := query(t, p, Selection{})
	be.Equal(t, len(list), 1)
	be.Equal(t, list[0].GivenName, "Bob")

	var orphans int
	err = p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM data d LEFT JOIN raw_contacts rc ON rc._id = d.raw_contact_id WHERE rc._id IS NULL`).Scan(&orphans)
	be.Err(t, err, nil)
	be.Equal(t, orphans, 0)

	be.Err(t, p.DeleteContact(ctx, annID), ErrNotFound)
	be.Err(t, p.DeleteContact(ctx, ""), ErrNotFound)
}

func TestPhoto(t *testing.T) {
	p := openTestProvider(t)
	ctx := context.Background()

	c := bob()
	c.Avatar = []byte{1, 2, 3}
	id, err := p.AddContact(ctx, c)
	be.Err(t, err, nil)

	photo, err := p.Photo(ctx, id)
	be.Err(t, err, nil)
	be.Equal(t, photo, []byte{1, 2, 3})

	list := query(t, p, Selection{DisplayNamePrefix: "Bob"})
	be.Equal(t, len(list), 1)
	be.Equal(t, len(list[0].Avatar), 0)

	c.Identifier = id
	c.Avatar = []byte{4, 5}
	be.Err(t, p.UpdateContact(ctx, c), nil)
	photo, err = p.Photo(ctx, id)
	be.Err(t, err, nil)
	be.Equal(t, photo, []byte{4, 5})

	annID, err := p.AddContact(ctx, ann())
	be.Err(t, err, nil)
	_, err = p.Photo(ctx, annID)
	be.Err(t, err, ErrNotFound)
}

func TestReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")
	ctx := context.Background()

	rw, err := Open(ctx, path)
	be.Err(t, err, nil)
	_, err = rw.AddContact(ctx, bob())
	be.Err(t, err, nil)
	be.Err(t, rw.Close(), nil)

	ro, err := Open(ctx, path, WithReadOnly())
	be.Err(t, err, nil)
	defer ro.Close()

	be.Equal(t, len(query(t, ro, Selection{})), 1)
	_, err = ro.AddContact(ctx, ann())
	be.True(t, err != nil)
}
