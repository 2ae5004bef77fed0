package provider

import (
	"context"
	"database/sql"
	"iter"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/spachava753/contactsbridge/android/contacts"
)

// minPhoneMatchDigits is how many trailing digits two numbers must share to
// match loosely.
const minPhoneMatchDigits = 7

// Selection picks the rows Rows yields.
//
// Phone takes precedence over Email, which takes precedence over
// DisplayNamePrefix. The zero Selection yields every row of a readable kind.
type Selection struct {
	// DisplayNamePrefix matches contacts whose display name starts with it.
	// Rows of every MIME type are returned for those contacts.
	DisplayNamePrefix string
	// ContactID restricts rows to one contact. It combines with
	// DisplayNamePrefix and the zero selection.
	ContactID string
	// Phone selects every row of contacts owning a loosely matching number.
	Phone string
	// Email selects every row of contacts owning an address containing it.
	Email string
}

const selectFieldRows = `SELECT
	rc.contact_id,
	COALESCE(c.display_name, ''),
	d.mimetype,
	COALESCE(rc.account_type, ''),
	COALESCE(rc.account_name, ''),
	COALESCE(d.data1, ''), COALESCE(d.data2, ''), COALESCE(d.data3, ''), COALESCE(d.data4, ''),
	COALESCE(d.data5, ''), COALESCE(d.data6, ''), COALESCE(d.data7, ''), COALESCE(d.data8, ''),
	COALESCE(d.data9, ''), COALESCE(d.data10, '')
FROM data d
JOIN raw_contacts rc ON rc._id = d.raw_contact_id
JOIN contacts c ON c._id = rc.contact_id
WHERE rc.deleted = 0`

// Rows yields the field rows selected by sel, ordered by contact id and then
// by data row id. Iteration stops at the first error, which is yielded with
// a zero row.
func (p *Provider) Rows(ctx context.Context, sel Selection) iter.Seq2[contacts.FieldRow, error] {
	return func(yield func(contacts.FieldRow, error) bool) {
		query, args, ok, err := p.rowQuery(ctx, sel)
		if err != nil {
			yield(contacts.FieldRow{}, err)
			return
		}
		if !ok {
			return
		}

		rows, err := p.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(contacts.FieldRow{}, errors.Wrap(err, "provider: sqlite query failed"))
			return
		}
		defer rows.Close()

		for rows.Next() {
			row, err := scanFieldRow(rows)
			if err != nil {
				yield(contacts.FieldRow{}, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(contacts.FieldRow{}, errors.Wrap(err, "provider: reading sqlite rows failed"))
		}
	}
}

// rowQuery builds the SQL for sel. ok is false when sel can match nothing.
func (p *Provider) rowQuery(ctx context.Context, sel Selection) (query string, args []any, ok bool, err error) {
	var where []string

	switch {
	case sel.Phone != "":
		ids, err := p.contactIDsForPhone(ctx, sel.Phone)
		if err != nil || len(ids) == 0 {
			return "", nil, false, err
		}
		where, args = append(where, "rc.contact_id IN ("+placeholders(len(ids))+")"), append(args, ids...)
	case sel.Email != "":
		ids, err := p.contactIDsForEmail(ctx, sel.Email)
		if err != nil || len(ids) == 0 {
			return "", nil, false, err
		}
		where, args = append(where, "rc.contact_id IN ("+placeholders(len(ids))+")"), append(args, ids...)
	default:
		if sel.DisplayNamePrefix != "" {
			where = append(where, `c.display_name LIKE ? ESCAPE '\'`)
			args = append(args, escapeLike(sel.DisplayNamePrefix)+"%")
		} else {
			known := contacts.KnownMimeTypes()
			where = append(where, "d.mimetype IN ("+placeholders(len(known))+")")
			for _, mt := range known {
				args = append(args, mt)
			}
		}
		if sel.ContactID != "" {
			where = append(where, "rc.contact_id = ?")
			args = append(args, sel.ContactID)
		}
	}

	query = selectFieldRows
	for _, clause := range where {
		query += " AND " + clause
	}
	query += " ORDER BY rc.contact_id, d._id"
	return query, args, true, nil
}

func (p *Provider) contactIDsForPhone(ctx context.Context, phone string) ([]any, error) {
	if digitsOnly(phone) == "" {
		return nil, nil
	}

	rows, err := p.db.QueryContext(ctx, `SELECT DISTINCT rc.contact_id, COALESCE(d.data1, '')
FROM data d
JOIN raw_contacts rc ON rc._id = d.raw_contact_id
WHERE rc.deleted = 0 AND d.mimetype = ?
ORDER BY rc.contact_id`, contacts.MimeTypePhone)
	if err != nil {
		return nil, errors.Wrap(err, "provider: phone lookup failed")
	}
	defer rows.Close()

	var ids []any
	seen := map[int64]bool{}
	for rows.Next() {
		var id int64
		var number string
		if err := rows.Scan(&id, &number); err != nil {
			return nil, errors.Wrap(err, "provider: scanning phone lookup row failed")
		}
		if !seen[id] && phoneMatches(number, phone) {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, errors.Wrap(rows.Err(), "provider: reading phone lookup rows failed")
}

func (p *Provider) contactIDsForEmail(ctx context.Context, email string) ([]any, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}

	rows, err := p.db.QueryContext(ctx, `SELECT DISTINCT rc.contact_id
FROM data d
JOIN raw_contacts rc ON rc._id = d.raw_contact_id
WHERE rc.deleted = 0 AND d.mimetype = ? AND LOWER(d.data1) LIKE ? ESCAPE '\'
ORDER BY rc.contact_id`, contacts.MimeTypeEmail, "%"+escapeLike(strings.ToLower(email))+"%")
	if err != nil {
		return nil, errors.Wrap(err, "provider: email lookup failed")
	}
	defer rows.Close()

	var ids []any
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "provider: scanning email lookup row failed")
		}
		ids = append(ids, id)
	}
	return ids, errors.Wrap(rows.Err(), "provider: reading email lookup rows failed")
}

func scanFieldRow(rows *sql.Rows) (contacts.FieldRow, error) {
	var row contacts.FieldRow
	var data [dataColumns + 1]string
	dest := []any{&row.ContactID, &row.DisplayName, &row.MimeType, &row.AccountType, &row.AccountName}
	for i := 1; i <= dataColumns; i++ {
		dest = append(dest, &data[i])
	}
	if err := rows.Scan(dest...); err != nil {
		return contacts.FieldRow{}, errors.Wrap(err, "provider: scanning sqlite row failed")
	}

	switch row.Kind() {
	case contacts.KindStructuredName:
		row.GivenName = data[nameGiven]
		row.FamilyName = data[nameFamily]
		row.Prefix = data[namePrefix]
		row.MiddleName = data[nameMiddle]
		row.Suffix = data[nameSuffix]
	case contacts.KindNote:
		row.Note = data[noteText]
	case contacts.KindPhone:
		row.PhoneNumber = data[itemValue]
		row.PhoneType = parseTypeCode(data[itemType])
		row.PhoneLabel = data[itemLabel]
	case contacts.KindEmail:
		row.EmailAddress = data[itemValue]
		row.EmailType = parseTypeCode(data[itemType])
		row.EmailLabel = data[itemLabel]
	case contacts.KindOrganization:
		row.Company = data[orgCompany]
		row.JobTitle = data[orgTitle]
	case contacts.KindStructuredPostal:
		row.PostalType = parseTypeCode(data[postalType])
		row.PostalLabel = data[postalLabel]
		row.Street = data[postalStreet]
		row.City = data[postalCity]
		row.Region = data[postalRegion]
		row.Postcode = data[postalPostcode]
		row.Country = data[postalCountry]
	case contacts.KindEvent:
		row.EventStartDate = data[eventStart]
		row.EventType = parseTypeCode(data[eventType])
	}
	return row, nil
}

// parseTypeCode reads a stored type code; missing or malformed codes read
// as 0 like a null integer column.
func parseTypeCode(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func phoneMatches(stored, query string) bool {
	a, b := digitsOnly(stored), digitsOnly(query)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	n := min(len(a), len(b))
	if n < minPhoneMatchDigits {
		return false
	}
	return a[len(a)-n:] == b[len(b)-n:]
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return replacer.Replace(value)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
