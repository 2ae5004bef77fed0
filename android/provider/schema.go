package provider

import "fmt"

// Tables.
const (
	TableContacts    = "contacts"
	TableRawContacts = "raw_contacts"
	TableData        = "data"
)

// Columns shared across tables.
const (
	ColumnID           = "_id"
	ColumnDisplayName  = "display_name"
	ColumnContactID    = "contact_id"
	ColumnAccountType  = "account_type"
	ColumnAccountName  = "account_name"
	ColumnDeleted      = "deleted"
	ColumnRawContactID = "raw_contact_id"
	ColumnMimeType     = "mimetype"
	ColumnPhoto        = "data15"
)

// DataColumn returns the name of the generic data column n (data1..data10).
func DataColumn(n int) string {
	return fmt.Sprintf("data%d", n)
}

// Generic data columns per kind.
const (
	nameDisplay = 1
	nameGiven   = 2
	nameFamily  = 3
	namePrefix  = 4
	nameMiddle  = 5
	nameSuffix  = 6

	itemValue = 1
	itemType  = 2
	itemLabel = 3

	orgCompany = 1
	orgTitle   = 4

	postalFormatted = 1
	postalType      = 2
	postalLabel     = 3
	postalStreet    = 4
	postalCity      = 7
	postalRegion    = 8
	postalPostcode  = 9
	postalCountry   = 10

	noteText = 1

	eventStart = 1
	eventType  = 2

	dataColumns = 10
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	_id INTEGER PRIMARY KEY AUTOINCREMENT,
	display_name TEXT
);
CREATE TABLE IF NOT EXISTS raw_contacts (
	_id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL REFERENCES contacts(_id) ON DELETE CASCADE,
	account_type TEXT,
	account_name TEXT,
	deleted INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS data (
	_id INTEGER PRIMARY KEY AUTOINCREMENT,
	raw_contact_id INTEGER NOT NULL REFERENCES raw_contacts(_id) ON DELETE CASCADE,
	mimetype TEXT NOT NULL,
	data1 TEXT,
	data2 TEXT,
	data3 TEXT,
	data4 TEXT,
	data5 TEXT,
	data6 TEXT,
	data7 TEXT,
	data8 TEXT,
	data9 TEXT,
	data10 TEXT,
	data15 BLOB
);
CREATE INDEX IF NOT EXISTS raw_contacts_contact_id ON raw_contacts(contact_id);
CREATE INDEX IF NOT EXISTS data_raw_contact_id ON data(raw_contact_id);
CREATE INDEX IF NOT EXISTS data_mimetype ON data(mimetype);
`
