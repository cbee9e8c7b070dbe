package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/StarAtNyte/audiovibe/cmd/info"
	"github.com/StarAtNyte/audiovibe/cmd/play"
	"github.com/StarAtNyte/audiovibe/cmd/queue"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "audiovibe",
		Short:   "Audiobook and music playback for the terminal",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			play.Cmd(),
			queue.Cmd(),
			info.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
