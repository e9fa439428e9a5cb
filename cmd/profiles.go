package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/qbdeck/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List document profiles or dump one as YAML",
	Long: `List the built-in profiles and those of --profiles-file. With --dump,
print the named profile as YAML, ready to be edited into a custom profile.`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	profilesCmd.Flags().String("dump", "", "Print the named profile as YAML")
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if name, _ := cmd.Flags().GetString("dump"); name != "" {
		p, err := reg.Get(name)
		if err != nil {
			return err
		}
		data, err := profile.Marshal(p)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFORMAT\tDESCRIPTION")
	for _, name := range reg.Names() {
		p, _ := reg.Get(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Format, p.Description)
	}
	return tw.Flush()
}
