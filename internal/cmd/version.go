package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/missionmap/internal/version"
)

var (
	versionVerbose bool
	versionJSON    bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the missionmap version. With --verbose the output includes the
git commit, build date, Go version and target platform; --json emits
the same details as a JSON object.`,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "show commit, build date and platform")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output version information as JSON")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()

	switch {
	case versionJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case versionVerbose:
		fmt.Println(info.String())
	default:
		fmt.Printf("missionmap %s\n", info.Short())
	}
	return nil
}
