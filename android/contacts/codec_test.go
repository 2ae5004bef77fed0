package contacts

import (
	"encoding/json"
	"testing"

	"github.com/nalgeon/be"
)

func sampleContact() Contact {
	return Contact{
		Identifier:  "42",
		DisplayName: "Dr. Ann Lee",
		GivenName:   "Ann",
		MiddleName:  "M",
		FamilyName:  "Lee",
		Prefix:      "Dr.",
		Suffix:      "PhD",
		Company:     "Acme",
		JobTitle:    "CTO",
		Note:        "met at conf",
		Birthday:    "1990-05-17",
		AccountType: "com.google",
		AccountName: "ann@gmail.com",
		Emails:      []Item{{Label: "work", Value: "ann@acme.example", Type: EmailTypeWork}},
		Phones: []Item{
			{Label: "mobile", Value: "555-1234", Type: PhoneTypeMobile},
			{Label: "boat", Value: "555-9999", Type: PhoneTypeCustom},
		},
		PostalAddresses: []PostalAddress{{
			Label: "home", Street: "1 Main St", City: "Springfield",
			Postcode: "12345", Region: "IL", Country: "US", Type: PostalTypeHome,
		}},
		Avatar: []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestContactMapRoundTrip(t *testing.T) {
	c := sampleContact()
	be.Equal(t, ContactFromMap(c.ToMap()), c)
}

func TestContactMapRoundTripEmpty(t *testing.T) {
	c := Contact{Identifier: "1"}
	be.Equal(t, ContactFromMap(c.ToMap()), c)
}

func TestContactToMapShape(t *testing.T) {
	m := Contact{Identifier: "1", Phones: []Item{{Label: "home", Value: "1", Type: PhoneTypeHome}}}.ToMap()

	be.Equal(t, m[KeyIdentifier], any("1"))
	be.Equal(t, m[KeyGivenName], nil)
	be.Equal(t, m[KeyAvatar], any([]byte{}))
	phones := m[KeyPhones].([]map[string]any)
	be.Equal(t, phones[0][KeyType], any("1"))
	be.Equal(t, len(m[KeyEmails].([]map[string]any)), 0)
	_, ok := m[KeyAndroidAccountType]
	be.True(t, ok)
}

func TestContactFromMapMissingKeys(t *testing.T) {
	c := ContactFromMap(map[string]any{KeyGivenName: "Ann"})
	be.Equal(t, c, Contact{GivenName: "Ann"})
}

func TestItemFromMapBadType(t *testing.T) {
	be.Equal(t, ItemFromMap(map[string]any{KeyValue: "1", KeyType: "abc"}).Type, -1)
	be.Equal(t, ItemFromMap(map[string]any{KeyValue: "1"}).Type, -1)
	be.Equal(t, ItemFromMap(map[string]any{KeyType: "3"}).Type, 3)
	be.Equal(t, PostalAddressFromMap(map[string]any{KeyType: nil}).Type, -1)
}

func TestContactFromJSON(t *testing.T) {
	c := sampleContact()
	data, err := json.Marshal(c.ToMap())
	be.Err(t, err, nil)

	var m map[string]any
	be.Err(t, json.Unmarshal(data, &m), nil)

	be.Equal(t, ContactFromMap(m), c)
}
