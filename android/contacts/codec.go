package contacts

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Map keys of the flat key-value contact form.
const (
	KeyIdentifier         = "identifier"
	KeyDisplayName        = "displayName"
	KeyGivenName          = "givenName"
	KeyMiddleName         = "middleName"
	KeyFamilyName         = "familyName"
	KeyPrefix             = "prefix"
	KeySuffix             = "suffix"
	KeyCompany            = "company"
	KeyJobTitle           = "jobTitle"
	KeyAvatar             = "avatar"
	KeyNote               = "note"
	KeyBirthday           = "birthday"
	KeyAndroidAccountType = "androidAccountType"
	KeyAndroidAccountName = "androidAccountName"
	KeyEmails             = "emails"
	KeyPhones             = "phones"
	KeyPostalAddresses    = "postalAddresses"

	KeyLabel    = "label"
	KeyValue    = "value"
	KeyType     = "type"
	KeyStreet   = "street"
	KeyCity     = "city"
	KeyPostcode = "postcode"
	KeyRegion   = "region"
	KeyCountry  = "country"
)

// ToMap converts c to the flat map form. Empty strings become nil, avatar is
// never nil and list item types are decimal strings.
func (c Contact) ToMap() map[string]any {
	avatar := c.Avatar
	if avatar == nil {
		avatar = []byte{}
	}

	emails := make([]map[string]any, 0, len(c.Emails))
	for _, email := range c.Emails {
		emails = append(emails, email.ToMap())
	}
	phones := make([]map[string]any, 0, len(c.Phones))
	for _, phone := range c.Phones {
		phones = append(phones, phone.ToMap())
	}
	addresses := make([]map[string]any, 0, len(c.PostalAddresses))
	for _, address := range c.PostalAddresses {
		addresses = append(addresses, address.ToMap())
	}

	return map[string]any{
		KeyIdentifier:         nullable(c.Identifier),
		KeyDisplayName:        nullable(c.DisplayName),
		KeyGivenName:          nullable(c.GivenName),
		KeyMiddleName:         nullable(c.MiddleName),
		KeyFamilyName:         nullable(c.FamilyName),
		KeyPrefix:             nullable(c.Prefix),
		KeySuffix:             nullable(c.Suffix),
		KeyCompany:            nullable(c.Company),
		KeyJobTitle:           nullable(c.JobTitle),
		KeyAvatar:             avatar,
		KeyNote:               nullable(c.Note),
		KeyBirthday:           nullable(c.Birthday),
		KeyAndroidAccountType: nullable(c.AccountType),
		KeyAndroidAccountName: nullable(c.AccountName),
		KeyEmails:             emails,
		KeyPhones:             phones,
		KeyPostalAddresses:    addresses,
	}
}

// ToMap converts i to {label, value, type}.
func (i Item) ToMap() map[string]any {
	return map[string]any{
		KeyLabel: nullable(i.Label),
		KeyValue: nullable(i.Value),
		KeyType:  strconv.Itoa(i.Type),
	}
}

// ToMap converts a to {label, street, city, postcode, region, country, type}.
func (a PostalAddress) ToMap() map[string]any {
	return map[string]any{
		KeyLabel:    nullable(a.Label),
		KeyStreet:   nullable(a.Street),
		KeyCity:     nullable(a.City),
		KeyPostcode: nullable(a.Postcode),
		KeyRegion:   nullable(a.Region),
		KeyCountry:  nullable(a.Country),
		KeyType:     strconv.Itoa(a.Type),
	}
}

// ContactFromMap is the inverse of Contact.ToMap. Missing or nil keys yield
// empty fields. It also accepts the shapes produced by decoding JSON: lists
// of map[string]any and base64-encoded avatars.
func ContactFromMap(m map[string]any) Contact {
	c := Contact{
		Identifier:  stringValue(m[KeyIdentifier]),
		DisplayName: stringValue(m[KeyDisplayName]),
		GivenName:   stringValue(m[KeyGivenName]),
		MiddleName:  stringValue(m[KeyMiddleName]),
		FamilyName:  stringValue(m[KeyFamilyName]),
		Prefix:      stringValue(m[KeyPrefix]),
		Suffix:      stringValue(m[KeySuffix]),
		Company:     stringValue(m[KeyCompany]),
		JobTitle:    stringValue(m[KeyJobTitle]),
		Note:        stringValue(m[KeyNote]),
		Birthday:    stringValue(m[KeyBirthday]),
		AccountType: stringValue(m[KeyAndroidAccountType]),
		AccountName: stringValue(m[KeyAndroidAccountName]),
		Avatar:      bytesValue(m[KeyAvatar]),
	}
	for _, item := range mapList(m[KeyEmails]) {
		c.Emails = append(c.Emails, ItemFromMap(item))
	}
	for _, item := range mapList(m[KeyPhones]) {
		c.Phones = append(c.Phones, ItemFromMap(item))
	}
	for _, item := range mapList(m[KeyPostalAddresses]) {
		c.PostalAddresses = append(c.PostalAddresses, PostalAddressFromMap(item))
	}
	return c
}

// ItemFromMap is the inverse of Item.ToMap. A missing or non-numeric type
// yields -1.
func ItemFromMap(m map[string]any) Item {
	return Item{
		Label: stringValue(m[KeyLabel]),
		Value: stringValue(m[KeyValue]),
		Type:  typeValue(m[KeyType]),
	}
}

// PostalAddressFromMap is the inverse of PostalAddress.ToMap. A missing or
// non-numeric type yields -1.
func PostalAddressFromMap(m map[string]any) PostalAddress {
	return PostalAddress{
		Label:    stringValue(m[KeyLabel]),
		Street:   stringValue(m[KeyStreet]),
		City:     stringValue(m[KeyCity]),
		Postcode: stringValue(m[KeyPostcode]),
		Region:   stringValue(m[KeyRegion]),
		Country:  stringValue(m[KeyCountry]),
		Type:     typeValue(m[KeyType]),
	}
}

// ToMaps converts a contact list to its map form.
func ToMaps(list []Contact) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, c := range list {
		out = append(out, c.ToMap())
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func stringValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func bytesValue(v any) []byte {
	switch v := v.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return v
	case string:
		if v == "" {
			return nil
		}
		decoded, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil
		}
		return decoded
	default:
		return nil
	}
}

func typeValue(v any) int {
	switch v := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return -1
		}
		return n
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return -1
	}
}

func mapList(v any) []map[string]any {
	switch v := v.(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, elem := range v {
			if m, ok := elem.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}
