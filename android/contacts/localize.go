package contacts

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Localizer turns a type code into a human label in some language, the way
// the platform's per-kind getTypeLabel does. Results are not lower-cased.
type Localizer interface {
	TypeLabel(kind Kind, typeCode int, customLabel string) string
	Language() language.Tag
}

type typeLabelSet struct {
	phone  []string
	email  []string
	postal []string
}

var typeLabelSets = map[language.Tag]typeLabelSet{
	language.English: {
		phone: []string{"Custom", "Home", "Mobile", "Work", "Work Fax", "Home Fax", "Pager", "Other",
			"Callback", "Car", "Company Main", "ISDN", "Main", "Other Fax", "Radio", "Telex", "TTY TDD",
			"Work Mobile", "Work Pager", "Assistant", "MMS"},
		email:  []string{"Custom", "Home", "Work", "Other", "Mobile"},
		postal: []string{"Custom", "Home", "Work", "Other"},
	},
	language.French: {
		phone: []string{"Personnalisé", "Domicile", "Mobile", "Bureau", "Fax bureau", "Fax domicile",
			"Bipeur", "Autre", "Rappel", "Voiture", "Entreprise (principal)", "RNIS", "Principal",
			"Autre fax", "Radio", "Télex", "TTY TDD", "Mobile professionnel", "Bipeur professionnel",
			"Assistant", "MMS"},
		email:  []string{"Personnalisé", "Domicile", "Bureau", "Autre", "Mobile"},
		postal: []string{"Personnalisé", "Domicile", "Bureau", "Autre"},
	},
	language.German: {
		phone: []string{"Benutzerdefiniert", "Privat", "Mobil", "Geschäftlich", "Fax geschäftlich",
			"Fax privat", "Pager", "Sonstige", "Rückruf", "Auto", "Firma Hauptnummer", "ISDN",
			"Hauptnummer", "Weiteres Fax", "Funk", "Telex", "TTY/TDD", "Mobil geschäftlich",
			"Pager geschäftlich", "Assistent", "MMS"},
		email:  []string{"Benutzerdefiniert", "Privat", "Geschäftlich", "Sonstige", "Mobil"},
		postal: []string{"Benutzerdefiniert", "Privat", "Geschäftlich", "Sonstige"},
	},
	language.Spanish: {
		phone: []string{"Personalizado", "Casa", "Móvil", "Trabajo", "Fax del trabajo", "Fax de casa",
			"Busca", "Otro", "Devolución de llamada", "Coche", "Número principal de la empresa", "RDSI",
			"Principal", "Otro fax", "Radio", "Télex", "TTY TDD", "Móvil del trabajo",
			"Busca del trabajo", "Asistente", "MMS"},
		email:  []string{"Personalizado", "Casa", "Trabajo", "Otro", "Móvil"},
		postal: []string{"Personalizado", "Casa", "Trabajo", "Otro"},
	},
}

const (
	otherPhoneType  = PhoneTypeOther
	otherEmailType  = EmailTypeOther
	otherPostalType = PostalTypeOther
)

var typeLabelCatalog = buildTypeLabelCatalog()

var defaultLocalizer = NewCatalogLocalizer(language.English)

func buildTypeLabelCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, set := range typeLabelSets {
		for code, label := range set.phone {
			b.SetString(tag, typeLabelKey(KindPhone, code), label)
		}
		for code, label := range set.email {
			b.SetString(tag, typeLabelKey(KindEmail, code), label)
		}
		for code, label := range set.postal {
			b.SetString(tag, typeLabelKey(KindStructuredPostal, code), label)
		}
	}
	return b
}

func typeLabelKey(kind Kind, typeCode int) string {
	return fmt.Sprintf("%s.%d", kind, typeCode)
}

// CatalogLocalizer resolves type labels from the built-in message catalog,
// which carries English, French, German and Spanish. Other languages fall
// back to English.
type CatalogLocalizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewCatalogLocalizer returns a localizer for tag.
func NewCatalogLocalizer(tag language.Tag) *CatalogLocalizer {
	return &CatalogLocalizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(typeLabelCatalog)),
	}
}

// Language returns the tag the localizer was built for.
func (l *CatalogLocalizer) Language() language.Tag {
	return l.tag
}

// TypeLabel returns the custom label for the custom code when one is set,
// the catalog label for known codes and the "Other" label for the rest.
func (l *CatalogLocalizer) TypeLabel(kind Kind, typeCode int, customLabel string) string {
	if typeCode == 0 && customLabel != "" {
		return customLabel
	}

	var known []string
	var other int
	switch kind {
	case KindPhone:
		known, other = typeLabelSets[language.English].phone, otherPhoneType
	case KindEmail:
		known, other = typeLabelSets[language.English].email, otherEmailType
	case KindStructuredPostal:
		known, other = typeLabelSets[language.English].postal, otherPostalType
	default:
		return l.printer.Sprintf(typeLabelKey(KindPhone, otherPhoneType))
	}
	if typeCode < 0 || typeCode >= len(known) {
		typeCode = other
	}
	return l.printer.Sprintf(typeLabelKey(kind, typeCode))
}
