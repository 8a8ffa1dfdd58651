package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"opforge/internal/family"
	"opforge/internal/group"
	"opforge/internal/overload"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List the capability family rule table",
	RunE:  runFamilies,
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the composite group catalog",
	RunE:  runGroups,
}

func init() {
	familiesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	familiesCmd.Flags().Bool("variants", false, "include the overload variant table per provision")
	groupsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type familyJSON struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires"`
	Provides []string `json:"provides"`
}

// placeholderSpec instantiates a family against T (and U where the
// family demands a foreign type) for display.
func placeholderSpec(name string) (family.Spec, error) {
	spec, err := family.Instantiate(name, "T", "")
	if err == nil {
		return spec, nil
	}
	return family.Instantiate(name, "T", "U")
}

func runFamilies(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showVariants, err := cmd.Flags().GetBool("variants")
	if err != nil {
		return fmt.Errorf("failed to get variants flag: %w", err)
	}
	out := cmd.OutOrStdout()

	if format == "json" {
		rows := make([]familyJSON, 0, len(family.Names()))
		for _, name := range family.Names() {
			spec, err := placeholderSpec(name)
			if err != nil {
				return err
			}
			row := familyJSON{Name: name}
			for _, prim := range spec.Requires() {
				row.Requires = append(row.Requires, prim.Key())
			}
			for _, prov := range spec.Provides() {
				row.Provides = append(row.Provides, prov.Sig.String())
			}
			rows = append(rows, row)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if format != "pretty" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	for _, name := range family.Names() {
		spec, err := placeholderSpec(name)
		if err != nil {
			return err
		}
		requires := make([]string, 0, 3)
		for _, prim := range spec.Requires() {
			requires = append(requires, prim.Key())
		}
		provides := make([]string, 0, 3)
		for _, prov := range spec.Provides() {
			provides = append(provides, prov.Sig.String())
		}
		fmt.Fprintf(out, "%-26s requires %-38s provides %s\n",
			name, join(requires), join(provides))
		if !showVariants {
			continue
		}
		for _, prov := range spec.Provides() {
			for _, v := range overload.Expand(prov) {
				fmt.Fprintf(out, "    %-12s %-28s %s -> %s\n",
					prov.Sig.String(), v.Modes.String(), v.Strategy, v.Result())
			}
		}
	}
	return nil
}

func runGroups(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	out := cmd.OutOrStdout()

	if format == "json" {
		rows := make(map[string][]string, len(group.Names()))
		for _, name := range group.Names() {
			members, _ := group.Members(name)
			rows[name] = members
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if format != "pretty" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	for _, name := range group.Names() {
		members, _ := group.Members(name)
		fmt.Fprintf(out, "%-26s = %s\n", name, join(members))
	}
	return nil
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
