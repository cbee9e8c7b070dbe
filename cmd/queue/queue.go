package queue

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/StarAtNyte/audiovibe/cmd/common"
	"github.com/StarAtNyte/audiovibe/cmd/play/audio"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type Params struct {
	Files      []string `pos:"true" help:"Audio files to play back to back"`
	Volume     float64  `short:"v" optional:"true" help:"Volume (0.0-1.0)" default:"1.0"`
	Speed      float64  `short:"x" optional:"true" help:"Playback speed (0.25-4.0)" default:"1.0"`
	SampleRate int      `optional:"true" help:"Output sample rate" default:"44100"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "queue",
		Short:       "Play files sequentially without interaction",
		Long:        "Queue up audio files and play them back to back, printing each track transition. Ctrl+C stops playback.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runQueue(params); err != nil {
				fmt.Fprintf(os.Stderr, "queue: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runQueue(params *Params) error {
	if len(params.Files) == 0 {
		return errors.New("no files given")
	}

	sink, err := audio.NewSpeakerSink(params.SampleRate)
	if err != nil {
		return err
	}

	engine := audio.NewEngine(sink, audio.DefaultConfig())
	ctrl := audio.NewController(audio.NewManager(engine))
	defer ctrl.Close()

	tracks := lo.Map(params.Files, func(path string, _ int) audio.Track {
		return audio.NewTrack(path)
	})

	if err := ctrl.PlayTrackNow(tracks[0]); err != nil {
		return err
	}
	ctrl.AddAllToQueue(tracks[1:])
	ctrl.SetVolume(params.Volume)
	ctrl.SetSpeed(params.Speed)

	if err := ctrl.Play(); err != nil {
		return err
	}
	slog.Info("playing", "track", tracks[0].Title, "queued", len(tracks)-1)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sigChan:
			ctrl.Stop()
			return nil

		case <-ctrl.Done():
			ok, err := ctrl.PlayNext()
			if err != nil {
				return err
			}
			if !ok {
				slog.Info("queue finished")
				return nil
			}
			if err := ctrl.Play(); err != nil {
				return err
			}
			if cur, found := ctrl.CurrentTrack(); found {
				slog.Info("playing", "track", cur.Title, "queued", len(ctrl.Queue()))
			}
		}
	}
}
