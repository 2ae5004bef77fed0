package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spachava753/contactsbridge/android/contacts"
	"github.com/spachava753/contactsbridge/channel"
)

type listOptions struct {
	phone      string
	email      string
	id         string
	order      bool
	localized  bool
	thumbnails bool
	highRes    bool
	asJSON     bool
}

func newListCmd(opts *rootOptions) *cobra.Command {
	lo := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List contacts, optionally filtered by name prefix, phone, email or id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lo.phone != "" && lo.email != "" {
				return formattedError("only one of --phone and --email may be set")
			}

			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			callArgs := map[string]any{
				"withThumbnails":      lo.thumbnails,
				"photoHighResolution": lo.highRes,
				"orderByGivenName":    lo.order,
			}
			if cmd.Flags().Changed("localized") {
				callArgs["androidLocalizedLabels"] = lo.localized
			}

			method := channel.MethodGetContacts
			switch {
			case lo.phone != "":
				method = channel.MethodGetContactsForPhone
				callArgs["phone"] = lo.phone
			case lo.email != "":
				method = channel.MethodGetContactsForEmail
				callArgs["email"] = lo.email
			case len(args) == 1:
				callArgs["query"] = args[0]
			}

			result, err := s.invoke(cmd.Context(), method, callArgs)
			if err != nil {
				return err
			}
			list, _ := result.([]map[string]any)
			if lo.id != "" {
				list = filterByIdentifier(list, lo.id)
			}

			if lo.asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			printContacts(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().StringVar(&lo.phone, "phone", "", "list contacts owning a matching phone number")
	cmd.Flags().StringVar(&lo.email, "email", "", "list contacts owning a matching email address")
	cmd.Flags().StringVar(&lo.id, "id", "", "only show the contact with this identifier")
	cmd.Flags().BoolVar(&lo.order, "order", false, "order by given name")
	cmd.Flags().BoolVar(&lo.localized, "localized", false, "use localized labels (defaults to labels.localized)")
	cmd.Flags().BoolVar(&lo.thumbnails, "thumbnails", false, "include avatars")
	cmd.Flags().BoolVar(&lo.highRes, "high-res", false, "include full resolution avatars instead of thumbnails")
	cmd.Flags().BoolVar(&lo.asJSON, "json", false, "print contacts in map form as JSON")

	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact from a JSON file in map form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := readContactFile(file)
			if err != nil {
				return err
			}

			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.invoke(cmd.Context(), channel.MethodAddContact, contact); err != nil {
				return err
			}
			printDone(cmd.OutOrStdout(), "contact added")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding the contact")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace a contact from a JSON file in map form; identifier is required",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := readContactFile(file)
			if err != nil {
				return err
			}

			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.invoke(cmd.Context(), channel.MethodUpdateContact, contact); err != nil {
				return err
			}
			printDone(cmd.OutOrStdout(), "contact %v updated", contact[contacts.KeyIdentifier])
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding the contact")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact and all of its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.invoke(cmd.Context(), channel.MethodDeleteContact, map[string]any{contacts.KeyIdentifier: args[0]}); err != nil {
				return err
			}
			printDone(cmd.OutOrStdout(), "contact %s deleted", args[0])
			return nil
		},
	}
}

func newAvatarCmd(opts *rootOptions) *cobra.Command {
	var (
		out     string
		highRes bool
	)

	cmd := &cobra.Command{
		Use:   "avatar <id>",
		Short: "Write the photo of a contact as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.invoke(cmd.Context(), channel.MethodGetAvatar, map[string]any{
				"contact":             map[string]any{contacts.KeyIdentifier: args[0]},
				"photoHighResolution": highRes,
			})
			if err != nil {
				return err
			}
			photo, _ := result.([]byte)
			if len(photo) == 0 {
				return formattedError("contact %s has no photo", args[0])
			}

			if err := os.WriteFile(out, photo, 0o644); err != nil {
				return err
			}
			printDone(cmd.OutOrStdout(), "wrote %s (%d bytes)", out, len(photo))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "PNG file to write")
	cmd.Flags().BoolVar(&highRes, "high-res", false, "write the full resolution photo instead of a thumbnail")
	cmd.MarkFlagRequired("out")
	return cmd
}

func readContactFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var contact map[string]any
	if err := json.Unmarshal(raw, &contact); err != nil {
		return nil, formattedError("%s must hold a JSON object: %v", path, err)
	}
	return contact, nil
}

func filterByIdentifier(list []map[string]any, id string) []map[string]any {
	var result []map[string]any
	for _, m := range list {
		if m[contacts.KeyIdentifier] == id {
			result = append(result, m)
		}
	}
	return result
}

func writeJSON(w io.Writer, list []map[string]any) error {
	if list == nil {
		list = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func printContacts(w io.Writer, list []map[string]any) {
	if len(list) == 0 {
		fmt.Fprintln(w, yellow("no contacts"))
		return
	}

	for _, m := range list {
		c := contacts.ContactFromMap(m)
		name := c.DisplayName
		if name == "" {
			name = c.ComputedDisplayName()
		}
		fmt.Fprintf(w, "%s %s\n", blue("#"+c.Identifier), name)

		for _, p := range c.Phones {
			fmt.Fprintf(w, "  %s %s\n", yellow(p.Label+":"), p.Value)
		}
		for _, e := range c.Emails {
			fmt.Fprintf(w, "  %s %s\n", yellow(e.Label+":"), e.Value)
		}
		for _, a := range c.PostalAddresses {
			parts := []string{a.Street, a.City, a.Postcode, a.Region, a.Country}
			fmt.Fprintf(w, "  %s %s\n", yellow(a.Label+":"), joinNonEmpty(parts, ", "))
		}
		if len(c.Avatar) > 0 {
			fmt.Fprintf(w, "  %s %d bytes\n", yellow("avatar:"), len(c.Avatar))
		}
	}
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
