package contacts

import (
	"strings"

	"golang.org/x/text/cases"
)

const labelOther = "other"

var fixedPhoneLabels = map[int]string{
	PhoneTypeHome:        "home",
	PhoneTypeMobile:      "mobile",
	PhoneTypeWork:        "work",
	PhoneTypeFaxWork:     "fax work",
	PhoneTypeFaxHome:     "fax home",
	PhoneTypePager:       "pager",
	PhoneTypeCompanyMain: "company",
	PhoneTypeMain:        "main",
}

var fixedEmailLabels = map[int]string{
	EmailTypeHome:   "home",
	EmailTypeWork:   "work",
	EmailTypeMobile: "mobile",
}

var fixedPostalLabels = map[int]string{
	PostalTypeHome: "home",
	PostalTypeWork: "work",
}

// Labeler resolves type codes of labeled kinds (phone, email, postal) to
// display labels.
//
// With Localized unset it uses a fixed English table: the custom code
// resolves to the row's custom label lower-cased, and unlisted codes resolve
// to "other". With Localized set it asks Localizer (the English catalog when
// nil) and lower-cases the answer for the localizer's language.
type Labeler struct {
	Localized bool
	Localizer Localizer
}

// Label resolves one type code of the given kind.
func (l Labeler) Label(kind Kind, typeCode int, customLabel string) string {
	if !l.Localized {
		return fixedLabel(kind, typeCode, customLabel)
	}
	loc := l.Localizer
	if loc == nil {
		loc = defaultLocalizer
	}
	return cases.Lower(loc.Language()).String(loc.TypeLabel(kind, typeCode, customLabel))
}

// PhoneLabel resolves a phone type code.
func PhoneLabel(typeCode int, customLabel string, localized bool) string {
	return Labeler{Localized: localized}.Label(KindPhone, typeCode, customLabel)
}

// EmailLabel resolves an email type code.
func EmailLabel(typeCode int, customLabel string, localized bool) string {
	return Labeler{Localized: localized}.Label(KindEmail, typeCode, customLabel)
}

// PostalLabel resolves a postal address type code.
func PostalLabel(typeCode int, customLabel string, localized bool) string {
	return Labeler{Localized: localized}.Label(KindStructuredPostal, typeCode, customLabel)
}

func fixedLabel(kind Kind, typeCode int, customLabel string) string {
	var table map[int]string
	switch kind {
	case KindPhone:
		table = fixedPhoneLabels
	case KindEmail:
		table = fixedEmailLabels
	case KindStructuredPostal:
		table = fixedPostalLabels
	default:
		return labelOther
	}
	// every labeled kind uses 0 for custom
	if typeCode == PhoneTypeCustom {
		return strings.ToLower(customLabel)
	}
	if label, ok := table[typeCode]; ok {
		return label
	}
	return labelOther
}
