package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/observability"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/profile"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <profile>",
	Short: "Delete a saved click profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()

		store, err := profile.NewStore(appCfg.Profiles.Dir, log.Named("store"))
		if err != nil {
			return err
		}
		path, err := resolveProfilePath(store, args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(path); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
