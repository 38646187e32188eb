package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"tracklet/internal/track"
)

// taxonomyCmd builds the identical add/rename/delete/list command tree
// for one taxonomy kind. Renames and deletes cascade into every task
// referencing the label.
func taxonomyCmd(kind track.Kind, use, plural string) *cobra.Command {
	root := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Manage %s", plural),
	}

	root.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: fmt.Sprintf("Add a %s", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(reg *track.Registry) (bool, error) {
				if err := reg.AddTaxonomy(kind, args[0]); err != nil {
					return false, err
				}
				fmt.Printf("Added %s %s\n", use, args[0])
				return true, nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "rename [old] [new]",
		Short: fmt.Sprintf("Rename a %s everywhere it is used", use),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(reg *track.Registry) (bool, error) {
				if err := reg.RenameTaxonomy(kind, args[0], args[1]); err != nil {
					return false, err
				}
				fmt.Printf("Renamed %s %s to %s\n", use, args[0], args[1])
				return true, nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: fmt.Sprintf("Delete a %s, clearing it from every task", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(reg *track.Registry) (bool, error) {
				if err := reg.DeleteTaxonomy(kind, args[0]); err != nil {
					return false, err
				}
				fmt.Printf("Deleted %s %s\n", use, args[0])
				return true, nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(reg *track.Registry) (bool, error) {
				values, err := reg.Taxonomy(kind)
				if err != nil {
					return false, err
				}
				if len(values) == 0 {
					fmt.Printf("No %s\n", plural)
					return false, nil
				}
				sort.Strings(values)
				for _, v := range values {
					fmt.Println(v)
				}
				return false, nil
			})
		},
	})

	return root
}
