package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X".
var Version = "v0.1.0-dev"

// VersionInfo is the JSON form of the version command.
type VersionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{Version: Version, Go: runtime.Version()}
			return rootOpts.formatter(cmd).Success(info, fmt.Sprintf("dualcheck %s (%s)\n", info.Version, info.Go))
		},
	}
}
