package play

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/StarAtNyte/audiovibe/cmd/common"
	"github.com/StarAtNyte/audiovibe/cmd/play/audio"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Files      []string `pos:"true" help:"Audio files to play. The first plays immediately, the rest are queued."`
	Volume     float64  `short:"v" optional:"true" help:"Initial volume (0.0-1.0)" default:"1.0"`
	Speed      float64  `short:"x" optional:"true" help:"Initial playback speed (0.25-4.0)" default:"1.0"`
	SampleRate int      `optional:"true" help:"Output sample rate" default:"44100"`
	Notify     bool     `short:"n" optional:"true" help:"Send a desktop notification on track change"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "play",
		Short: "Play audio files interactively",
		Long: `Play audio files in the terminal.

Controls:
  SPACE      - Pause / resume
  n          - Next queued track
  r          - Restart current track
  LEFT/RIGHT - Seek 10 seconds back / forward
  -/+        - Volume down / up
  [/]        - Slower / faster
  q or ESC   - Quit`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runPlay(params); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

var (
	stateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const seekStep = 10.0

func runPlay(params *Params) error {
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
	notifyTrack(params, tracks[0])

	// Raw mode so single keypresses arrive without Enter.
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	keyChan := make(chan key)
	go readKeys(keyChan)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	defer fmt.Print("\r\033[K\n")

	for {
		select {
		case <-sigChan:
			return nil

		case <-ctrl.Done():
			ok, err := ctrl.PlayNext()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := ctrl.Play(); err != nil {
				return err
			}
			if cur, found := ctrl.CurrentTrack(); found {
				notifyTrack(params, cur)
			}

		case k := <-keyChan:
			quit, err := handleKey(ctrl, params, k)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-ticker.C:
			render(ctrl.Status())
		}
	}
}

func handleKey(ctrl *audio.Controller, params *Params, k key) (quit bool, err error) {
	st := ctrl.Status()

	switch k {
	case keyQuit:
		return true, nil

	case keyToggle:
		if st.State == audio.StatePlaying {
			ctrl.Pause()
		} else if err := ctrl.Play(); err != nil && !errors.Is(err, audio.ErrNoFileLoaded) {
			return false, err
		}

	case keyNext:
		ok, err := ctrl.PlayNext()
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		if err := ctrl.Play(); err != nil {
			return false, err
		}
		if cur, found := ctrl.CurrentTrack(); found {
			notifyTrack(params, cur)
		}

	case keyRestart:
		if err := ctrl.Restart(); err != nil && !errors.Is(err, audio.ErrNoFileLoaded) {
			return false, err
		}

	case keySeekBack:
		if err := seekBy(ctrl, st, -seekStep); err != nil {
			return false, err
		}

	case keySeekFwd:
		if err := seekBy(ctrl, st, seekStep); err != nil {
			return false, err
		}

	case keyVolDown:
		ctrl.SetVolume(st.Volume - 0.1)

	case keyVolUp:
		ctrl.SetVolume(st.Volume + 0.1)

	case keySlower:
		ctrl.SetSpeed(st.Speed - 0.25)

	case keyFaster:
		ctrl.SetSpeed(st.Speed + 0.25)
	}

	return false, nil
}

func seekBy(ctrl *audio.Controller, st audio.Status, deltaSeconds float64) error {
	err := ctrl.Seek(float64(st.Position) + deltaSeconds)
	if err != nil && !errors.Is(err, audio.ErrNoFileLoaded) {
		return err
	}
	return nil
}

func render(st audio.Status) {
	icon := "■"
	switch st.State {
	case audio.StatePlaying:
		icon = "▶"
	case audio.StatePaused:
		icon = "⏸"
	}

	title := st.CurrentFile
	if title == "" {
		title = "(nothing loaded)"
	}
	title = runewidth.Truncate(title, 42, "…")

	clock := common.FormatPlayTime(time.Duration(st.Position) * time.Second)
	if st.Duration > 0 {
		clock += " / " + common.FormatPlayTime(time.Duration(st.Duration)*time.Second)
	}

	line := fmt.Sprintf("%s %s  %s  %s",
		stateStyle.Render(icon),
		titleStyle.Render(title),
		clock,
		dimStyle.Render(fmt.Sprintf("vol %3.0f%%  %.2fx", st.Volume*100, st.Speed)),
	)

	fmt.Print("\r\033[K" + line)
}

func notifyTrack(params *Params, track audio.Track) {
	if !params.Notify {
		return
	}
	// Notifications are decorative; never fail playback over them.
	_ = beeep.Notify("audiovibe", "Now playing: "+track.Title, "")
}

type key int

const (
	keyNone key = iota
	keyQuit
	keyToggle
	keyNext
	keyRestart
	keySeekBack
	keySeekFwd
	keyVolDown
	keyVolUp
	keySlower
	keyFaster
)

// readKeys translates raw terminal input, including arrow escape
// sequences, into key events.
func readKeys(out chan<- key) {
	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}

		k := keyNone
		switch {
		case n >= 3 && buf[0] == 0x1b && buf[1] == '[' && buf[2] == 'C':
			k = keySeekFwd
		case n >= 3 && buf[0] == 0x1b && buf[1] == '[' && buf[2] == 'D':
			k = keySeekBack
		case buf[0] == 0x1b && n == 1:
			k = keyQuit
		default:
			switch buf[0] {
			case 'q', 'Q', 3: // q or Ctrl+C
				k = keyQuit
			case ' ':
				k = keyToggle
			case 'n', 'N':
				k = keyNext
			case 'r', 'R':
				k = keyRestart
			case '-', '_':
				k = keyVolDown
			case '+', '=':
				k = keyVolUp
			case '[':
				k = keySlower
			case ']':
				k = keyFaster
			}
		}

		if k != keyNone {
			out <- k
		}
	}
}
