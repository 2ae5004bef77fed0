package contacts

import (
	"iter"
	"strings"
)

// Aggregate folds flat field rows into one Contact per distinct contact id.
//
// Contacts are returned in the order their id first appears. Every row
// overwrites DisplayName, AccountType and AccountName of its contact; the
// remaining effect depends on the row's kind. Rows of unknown kinds only
// contribute those contact-level columns. Aggregate never fails: missing
// columns yield empty values.
func Aggregate(rows iter.Seq[FieldRow], labeler Labeler) []Contact {
	byID := make(map[string]*Contact)
	order := make([]*Contact, 0, 16)

	for row := range rows {
		c, ok := byID[row.ContactID]
		if !ok {
			c = &Contact{Identifier: row.ContactID}
			byID[row.ContactID] = c
			order = append(order, c)
		}
		c.apply(row, labeler)
	}

	out := make([]Contact, 0, len(order))
	for _, c := range order {
		out = append(out, *c)
	}
	return out
}

// AggregateRows is Aggregate over a fallible row source. It stops at the
// first row error and returns it without partial results.
func AggregateRows(rows iter.Seq2[FieldRow, error], labeler Labeler) ([]Contact, error) {
	var rowErr error
	out := Aggregate(func(yield func(FieldRow) bool) {
		for row, err := range rows {
			if err != nil {
				rowErr = err
				return
			}
			if !yield(row) {
				return
			}
		}
	}, labeler)
	if rowErr != nil {
		return nil, rowErr
	}
	return out, nil
}

// Rows adapts a slice of rows to the sequence Aggregate consumes.
func Rows(rows []FieldRow) iter.Seq[FieldRow] {
	return func(yield func(FieldRow) bool) {
		for _, row := range rows {
			if !yield(row) {
				return
			}
		}
	}
}

func (c *Contact) apply(row FieldRow, labeler Labeler) {
	c.DisplayName = row.DisplayName
	c.AccountType = row.AccountType
	c.AccountName = row.AccountName

	switch row.Kind() {
	case KindStructuredName:
		c.GivenName = row.GivenName
		c.MiddleName = row.MiddleName
		c.FamilyName = row.FamilyName
		c.Prefix = row.Prefix
		c.Suffix = row.Suffix
	case KindNote:
		c.Note = row.Note
	case KindPhone:
		if isBlank(row.PhoneNumber) {
			return
		}
		c.Phones = append(c.Phones, Item{
			Label: labeler.Label(KindPhone, row.PhoneType, row.PhoneLabel),
			Value: row.PhoneNumber,
			Type:  row.PhoneType,
		})
	case KindEmail:
		if isBlank(row.EmailAddress) {
			return
		}
		c.Emails = append(c.Emails, Item{
			Label: labeler.Label(KindEmail, row.EmailType, row.EmailLabel),
			Value: row.EmailAddress,
			Type:  row.EmailType,
		})
	case KindOrganization:
		c.Company = row.Company
		c.JobTitle = row.JobTitle
	case KindStructuredPostal:
		c.PostalAddresses = append(c.PostalAddresses, PostalAddress{
			Label:    labeler.Label(KindStructuredPostal, row.PostalType, row.PostalLabel),
			Street:   row.Street,
			City:     row.City,
			Postcode: row.Postcode,
			Region:   row.Region,
			Country:  row.Country,
			Type:     row.PostalType,
		})
	case KindEvent:
		if row.EventType == EventTypeBirthday {
			c.Birthday = row.EventStartDate
		}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
