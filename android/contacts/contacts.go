package contacts

import "strings"

// Kind classifies one field row by the data MIME type it carries.
type Kind int

const (
	// KindUnknown is any MIME type the aggregator does not read.
	KindUnknown Kind = iota
	// KindStructuredName carries given/middle/family name, prefix and suffix.
	KindStructuredName
	// KindNote carries the free-text note.
	KindNote
	// KindPhone carries one phone number with its type code and custom label.
	KindPhone
	// KindEmail carries one email address with its type code and custom label.
	KindEmail
	// KindOrganization carries company and job title.
	KindOrganization
	// KindStructuredPostal carries one postal address.
	KindStructuredPostal
	// KindEvent carries a dated event such as a birthday.
	KindEvent
)

// Data MIME types as stored in the mimetype column of the data table.
const (
	MimeTypeStructuredName   = "vnd.android.cursor.item/name"
	MimeTypeNote             = "vnd.android.cursor.item/note"
	MimeTypePhone            = "vnd.android.cursor.item/phone_v2"
	MimeTypeEmail            = "vnd.android.cursor.item/email_v2"
	MimeTypeOrganization     = "vnd.android.cursor.item/organization"
	MimeTypeStructuredPostal = "vnd.android.cursor.item/postal-address_v2"
	MimeTypeEvent            = "vnd.android.cursor.item/contact_event"
	MimeTypePhoto            = "vnd.android.cursor.item/photo"
)

var kindMimeTypes = map[Kind]string{
	KindStructuredName:   MimeTypeStructuredName,
	KindNote:             MimeTypeNote,
	KindPhone:            MimeTypePhone,
	KindEmail:            MimeTypeEmail,
	KindOrganization:     MimeTypeOrganization,
	KindStructuredPostal: MimeTypeStructuredPostal,
	KindEvent:            MimeTypeEvent,
}

// KindOf maps a data MIME type to its Kind. Unrecognized types are KindUnknown.
func KindOf(mimeType string) Kind {
	for kind, mt := range kindMimeTypes {
		if mt == mimeType {
			return kind
		}
	}
	return KindUnknown
}

// MimeType returns the data MIME type for k, or "" for KindUnknown.
func (k Kind) MimeType() string {
	return kindMimeTypes[k]
}

// KnownMimeTypes lists the MIME types of every readable kind in Kind order.
func KnownMimeTypes() []string {
	return []string{
		MimeTypeStructuredName,
		MimeTypeNote,
		MimeTypePhone,
		MimeTypeEmail,
		MimeTypeOrganization,
		MimeTypeStructuredPostal,
		MimeTypeEvent,
	}
}

func (k Kind) String() string {
	switch k {
	case KindStructuredName:
		return "structured_name"
	case KindNote:
		return "note"
	case KindPhone:
		return "phone"
	case KindEmail:
		return "email"
	case KindOrganization:
		return "organization"
	case KindStructuredPostal:
		return "structured_postal"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Phone type codes.
const (
	PhoneTypeCustom      = 0
	PhoneTypeHome        = 1
	PhoneTypeMobile      = 2
	PhoneTypeWork        = 3
	PhoneTypeFaxWork     = 4
	PhoneTypeFaxHome     = 5
	PhoneTypePager       = 6
	PhoneTypeOther       = 7
	PhoneTypeCallback    = 8
	PhoneTypeCar         = 9
	PhoneTypeCompanyMain = 10
	PhoneTypeISDN        = 11
	PhoneTypeMain        = 12
	PhoneTypeOtherFax    = 13
	PhoneTypeRadio       = 14
	PhoneTypeTelex       = 15
	PhoneTypeTTYTDD      = 16
	PhoneTypeWorkMobile  = 17
	PhoneTypeWorkPager   = 18
	PhoneTypeAssistant   = 19
	PhoneTypeMMS         = 20
)

// Email type codes.
const (
	EmailTypeCustom = 0
	EmailTypeHome   = 1
	EmailTypeWork   = 2
	EmailTypeOther  = 3
	EmailTypeMobile = 4
)

// Postal address type codes.
const (
	PostalTypeCustom = 0
	PostalTypeHome   = 1
	PostalTypeWork   = 2
	PostalTypeOther  = 3
)

// Event type codes.
const (
	EventTypeCustom      = 0
	EventTypeAnniversary = 1
	EventTypeOther       = 2
	EventTypeBirthday    = 3
)

// FieldRow is one flat row produced by a row source: the contact it belongs
// to, the MIME type of the data it carries, the contact-level columns and the
// kind-specific columns. Only the columns of the row's kind are meaningful.
type FieldRow struct {
	ContactID   string
	MimeType    string
	DisplayName string
	AccountType string
	AccountName string

	GivenName  string
	MiddleName string
	FamilyName string
	Prefix     string
	Suffix     string

	Note string

	PhoneNumber string
	PhoneType   int
	PhoneLabel  string

	EmailAddress string
	EmailType    int
	EmailLabel   string

	Company  string
	JobTitle string

	PostalType  int
	PostalLabel string
	Street      string
	City        string
	Postcode    string
	Region      string
	Country     string

	EventType      int
	EventStartDate string
}

// Kind returns the kind derived from the row's MIME type.
func (r FieldRow) Kind() Kind {
	return KindOf(r.MimeType)
}

// Item is a labeled phone number or email address.
type Item struct {
	Label string
	Value string
	Type  int
}

// PostalAddress is one labeled postal address.
type PostalAddress struct {
	Label    string
	Street   string
	City     string
	Postcode string
	Region   string
	Country  string
	Type     int
}

// Contact is the aggregated record for one contact id.
//
// Scalars follow last-write-wins over the contributing rows. Emails, Phones
// and PostalAddresses keep row order. Avatar is only filled by avatar
// enrichment and is empty otherwise.
type Contact struct {
	Identifier      string
	DisplayName     string
	GivenName       string
	MiddleName      string
	FamilyName      string
	Prefix          string
	Suffix          string
	Company         string
	JobTitle        string
	Note            string
	Birthday        string
	AccountType     string
	AccountName     string
	Emails          []Item
	Phones          []Item
	PostalAddresses []PostalAddress
	Avatar          []byte
}

// ComputedDisplayName builds a display name from the structured name parts,
// falling back to company, first email and first phone.
func (c Contact) ComputedDisplayName() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{c.Prefix, c.GivenName, c.MiddleName, c.FamilyName, c.Suffix} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if company := strings.TrimSpace(c.Company); company != "" {
		return company
	}
	for _, email := range c.Emails {
		if v := strings.TrimSpace(email.Value); v != "" {
			return v
		}
	}
	for _, phone := range c.Phones {
		if v := strings.TrimSpace(phone.Value); v != "" {
			return v
		}
	}
	return ""
}
