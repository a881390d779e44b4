package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/observability"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/profile"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved click profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()

		store, err := profile.NewStore(appCfg.Profiles.Dir, log.Named("store"))
		if err != nil {
			return err
		}
		summaries, err := store.List()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Printf("No saved profiles in %s\n", store.Dir())
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPOINTS\tSAVED\tDESCRIPTION")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.Name, s.Points, s.SavedAt, s.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
