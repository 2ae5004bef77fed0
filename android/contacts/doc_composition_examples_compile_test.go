package contacts_test

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/spachava753/contactsbridge/android/contacts"
	"github.com/spachava753/contactsbridge/android/provider"
)

func composeAggregateAndOrder(ctx context.Context, store *provider.Provider) ([]contacts.Contact, error) {
	list, err := contacts.AggregateRows(store.Rows(ctx, provider.Selection{DisplayNamePrefix: "A"}), contacts.Labeler{})
	if err != nil {
		return nil, err
	}
	contacts.SortByGivenName(list)
	return list, nil
}

func composeFrenchLabels(rows []contacts.FieldRow) []string {
	labeler := contacts.Labeler{
		Localized: true,
		Localizer: contacts.NewCatalogLocalizer(language.French),
	}

	var labels []string
	for _, c := range contacts.Aggregate(contacts.Rows(rows), labeler) {
		for _, p := range c.Phones {
			labels = append(labels, p.Label)
		}
	}
	return labels
}

func composeMapRoundTrip(list []contacts.Contact) error {
	if len(list) == 0 {
		return nil
	}
	back := contacts.ContactFromMap(list[0].ToMap())
	if back.Identifier != list[0].Identifier {
		return fmt.Errorf("identifier changed: %q != %q", back.Identifier, list[0].Identifier)
	}
	return nil
}

var (
	_ = composeAggregateAndOrder
	_ = composeFrenchLabels
	_ = composeMapRoundTrip
)
