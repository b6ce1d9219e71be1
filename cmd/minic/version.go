package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/minic/internal/config"
)

// Version is the minic release, set with -ldflags "-X main.Version=...".
var Version = "0.1.0-dev"

type versionInfo struct {
	Version   string `json:"version"`
	Language  string `json:"language"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   Version,
		Language:  config.LanguageVersion,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func versionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// The project file is not needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := currentVersion()
			w := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("encode version: %w", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			fmt.Fprintf(w, "minic version %s\n", info.Version)
			fmt.Fprintf(w, "language version %s\n", info.Language)
			fmt.Fprintf(w, "go version %s %s/%s\n", info.GoVersion, info.Platform, info.Arch)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
