package info

import (
	"errors"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/StarAtNyte/audiovibe/cmd/common"
	"github.com/StarAtNyte/audiovibe/cmd/play/audio"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Params struct {
	Files []string `pos:"true" help:"Audio files to inspect"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "info",
		Short:       "Show metadata for audio files",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := runInfo(params, os.Stdout, os.Stderr)
			if exitCode != 0 {
				os.Exit(exitCode)
			}
		},
	}.ToCobra()
}

func runInfo(params *Params, stdout, stderr *os.File) int {
	if len(params.Files) == 0 {
		fmt.Fprintln(stderr, "info: no files given")
		return 1
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Title", "Artist", "Album", "Duration", "Rate", "Ch", "Bitrate", "Size"})

	hadError := false
	for _, file := range params.Files {
		info, err := audio.ReadInfo(file)
		if err != nil {
			fmt.Fprintf(stderr, "info: %s: %v\n", file, err)
			hadError = true
			if errors.Is(err, os.ErrNotExist) || info.FileSize == 0 {
				continue
			}
			// Partial info is still worth a row.
		}

		t.AppendRow(table.Row{
			file,
			info.Title,
			info.Artist,
			info.Album,
			common.FormatPlayTime(info.Duration),
			formatRate(info.SampleRate),
			info.Channels,
			formatBitrate(info.Bitrate),
			common.FormatSize(info.FileSize),
		})
	}

	t.Render()

	if hadError {
		return 1
	}
	return 0
}

func formatRate(sampleRate int) string {
	if sampleRate == 0 {
		return "-"
	}
	return fmt.Sprintf("%g kHz", float64(sampleRate)/1000)
}

func formatBitrate(kbps int) string {
	if kbps == 0 {
		return "-"
	}
	return fmt.Sprintf("%d kbps", kbps)
}
