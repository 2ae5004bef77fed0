package contacts

import (
	"errors"
	"iter"
	"testing"

	"github.com/nalgeon/be"
)

func nameRow(id, display, given, family string) FieldRow {
	return FieldRow{
		ContactID:   id,
		MimeType:    MimeTypeStructuredName,
		DisplayName: display,
		GivenName:   given,
		FamilyName:  family,
	}
}

func phoneRow(id, display, number string, typeCode int, label string) FieldRow {
	return FieldRow{
		ContactID:   id,
		MimeType:    MimeTypePhone,
		DisplayName: display,
		PhoneNumber: number,
		PhoneType:   typeCode,
		PhoneLabel:  label,
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(Rows(nil), Labeler{})
	be.Equal(t, len(got), 0)
}

func TestAggregateNameAndPhone(t *testing.T) {
	rows := []FieldRow{
		nameRow("1", "Ann Lee", "Ann", "Lee"),
		phoneRow("1", "Ann Lee", "555-1234", PhoneTypeMobile, ""),
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, len(got), 1)
	be.Equal(t, got[0].Identifier, "1")
	be.Equal(t, got[0].DisplayName, "Ann Lee")
	be.Equal(t, got[0].GivenName, "Ann")
	be.Equal(t, got[0].FamilyName, "Lee")
	be.Equal(t, got[0].Phones, []Item{{Label: "mobile", Value: "555-1234", Type: PhoneTypeMobile}})
	be.Equal(t, len(got[0].Avatar), 0)
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	rows := []FieldRow{
		nameRow("2", "Bob", "Bob", ""),
		nameRow("1", "Ann", "Ann", ""),
		phoneRow("2", "Bob", "555-0000", PhoneTypeHome, ""),
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, len(got), 2)
	be.Equal(t, got[0].Identifier, "2")
	be.Equal(t, got[1].Identifier, "1")
	be.Equal(t, len(got[0].Phones), 1)
}

func TestAggregateNeverMergesAcrossIDs(t *testing.T) {
	rows := []FieldRow{
		phoneRow("1", "Same", "111", PhoneTypeHome, ""),
		phoneRow("2", "Same", "222", PhoneTypeHome, ""),
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, len(got), 2)
	be.Equal(t, got[0].Phones[0].Value, "111")
	be.Equal(t, got[1].Phones[0].Value, "222")
}

func TestAggregateCustomEmailLabel(t *testing.T) {
	rows := []FieldRow{{
		ContactID:    "7",
		MimeType:     MimeTypeEmail,
		EmailAddress: "x@y.z",
		EmailType:    EmailTypeCustom,
		EmailLabel:   "School",
	}}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, got[0].Emails, []Item{{Label: "school", Value: "x@y.z", Type: EmailTypeCustom}})
}

func TestAggregateBlankValuesStillOverwriteDisplayName(t *testing.T) {
	rows := []FieldRow{
		nameRow("3", "Old", "Cid", ""),
		phoneRow("3", "New", "", PhoneTypeHome, ""),
		{ContactID: "3", MimeType: MimeTypeEmail, DisplayName: "Newest", EmailAddress: "   "},
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, len(got), 1)
	be.Equal(t, len(got[0].Phones), 0)
	be.Equal(t, len(got[0].Emails), 0)
	be.Equal(t, got[0].DisplayName, "Newest")
}

func TestAggregateBirthdayOnly(t *testing.T) {
	rows := []FieldRow{
		{ContactID: "4", MimeType: MimeTypeEvent, EventType: EventTypeAnniversary, EventStartDate: "2001-01-01"},
		{ContactID: "5", MimeType: MimeTypeEvent, EventType: EventTypeBirthday, EventStartDate: "1990-05-17"},
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, got[0].Birthday, "")
	be.Equal(t, got[1].Birthday, "1990-05-17")
}

func TestAggregateScalarsLastWriteWins(t *testing.T) {
	rows := []FieldRow{
		{ContactID: "1", MimeType: MimeTypeNote, Note: "first", AccountType: "com.google", AccountName: "a@gmail.com"},
		{ContactID: "1", MimeType: MimeTypeOrganization, Company: "Acme", JobTitle: "CTO"},
		{ContactID: "1", MimeType: MimeTypeNote, Note: "second", AccountType: "com.google", AccountName: "b@gmail.com"},
		{ContactID: "1", MimeType: MimeTypeOrganization, Company: "Initech"},
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, got[0].Note, "second")
	be.Equal(t, got[0].Company, "Initech")
	be.Equal(t, got[0].JobTitle, "")
	be.Equal(t, got[0].AccountName, "b@gmail.com")
}

func TestAggregatePostalAlwaysAppended(t *testing.T) {
	rows := []FieldRow{
		{ContactID: "1", MimeType: MimeTypeStructuredPostal, PostalType: PostalTypeHome, Street: "1 Main St", City: "Springfield"},
		{ContactID: "1", MimeType: MimeTypeStructuredPostal, PostalType: PostalTypeCustom, PostalLabel: "Cabin"},
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, got[0].PostalAddresses, []PostalAddress{
		{Label: "home", Street: "1 Main St", City: "Springfield", Type: PostalTypeHome},
		{Label: "cabin", Type: PostalTypeCustom},
	})
}

func TestAggregateUnknownKindOnlyOverwrites(t *testing.T) {
	rows := []FieldRow{
		nameRow("1", "Ann", "Ann", ""),
		{ContactID: "1", MimeType: MimeTypePhoto, DisplayName: "Ann L.", AccountType: "local"},
		{ContactID: "1", MimeType: "vnd.example/unknown", DisplayName: "Ann Lee"},
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, got[0].DisplayName, "Ann Lee")
	be.Equal(t, got[0].AccountType, "")
	be.Equal(t, got[0].GivenName, "Ann")
}

func TestAggregateListOrderPreserved(t *testing.T) {
	rows := []FieldRow{
		phoneRow("1", "", "1", PhoneTypeHome, ""),
		phoneRow("1", "", "2", PhoneTypeWork, ""),
		phoneRow("1", "", "3", PhoneTypeFaxWork, ""),
	}

	got := Aggregate(Rows(rows), Labeler{})
	be.Equal(t, got[0].Phones, []Item{
		{Label: "home", Value: "1", Type: PhoneTypeHome},
		{Label: "work", Value: "2", Type: PhoneTypeWork},
		{Label: "fax work", Value: "3", Type: PhoneTypeFaxWork},
	})
}

func TestAggregateLocalized(t *testing.T) {
	rows := []FieldRow{phoneRow("1", "", "555", PhoneTypeMobile, "")}

	got := Aggregate(Rows(rows), Labeler{Localized: true})
	be.Equal(t, got[0].Phones[0].Label, "mobile")
}

func TestAggregateRowsStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var rows iter.Seq2[FieldRow, error] = func(yield func(FieldRow, error) bool) {
		if !yield(nameRow("1", "Ann", "Ann", ""), nil) {
			return
		}
		if !yield(FieldRow{}, boom) {
			return
		}
		yield(nameRow("2", "Bob", "Bob", ""), nil)
	}

	got, err := AggregateRows(rows, Labeler{})
	be.Err(t, err, boom)
	be.Equal(t, len(got), 0)
}

func TestAggregateRows(t *testing.T) {
	var rows iter.Seq2[FieldRow, error] = func(yield func(FieldRow, error) bool) {
		for _, row := range []FieldRow{nameRow("1", "Ann", "Ann", ""), nameRow("2", "Bob", "Bob", "")} {
			if !yield(row, nil) {
				return
			}
		}
	}

	got, err := AggregateRows(rows, Labeler{})
	be.Err(t, err, nil)
	be.Equal(t, len(got), 2)
}

func TestKindOf(t *testing.T) {
	be.Equal(t, KindOf(MimeTypePhone), KindPhone)
	be.Equal(t, KindOf(MimeTypeStructuredPostal), KindStructuredPostal)
	be.Equal(t, KindOf(MimeTypePhoto), KindUnknown)
	be.Equal(t, KindOf(""), KindUnknown)
	for _, mt := range KnownMimeTypes() {
		be.Equal(t, KindOf(mt).MimeType(), mt)
	}
}

func TestComputedDisplayName(t *testing.T) {
	be.Equal(t, Contact{Prefix: "Dr.", GivenName: "Ann", FamilyName: " Lee "}.ComputedDisplayName(), "Dr. Ann Lee")
	be.Equal(t, Contact{Company: "Acme"}.ComputedDisplayName(), "Acme")
	be.Equal(t, Contact{Emails: []Item{{Value: "a@b.c"}}, Phones: []Item{{Value: "1"}}}.ComputedDisplayName(), "a@b.c")
	be.Equal(t, Contact{Phones: []Item{{Value: "555"}}}.ComputedDisplayName(), "555")
	be.Equal(t, Contact{}.ComputedDisplayName(), "")
}
