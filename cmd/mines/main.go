package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/console"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/tui"
)

var log = logrus.New()

type options struct {
	mode       string
	difficulty string
	params     mines.GameParams
	seed       uint64
	logFile    string
}

func parseFlags() (options, error) {
	seed, _, err := config.Seed()
	if err != nil {
		return options{}, err
	}

	var o options
	flag.StringVar(&o.mode, "mode", "console", "front end: console or tui")
	flag.StringVar(&o.difficulty, "difficulty", "", "easy, medium or hard")
	flag.IntVar(&o.params.Width, "width", 0, "grid width, overrides -difficulty")
	flag.IntVar(&o.params.Height, "height", 0, "grid height, overrides -difficulty")
	flag.IntVar(&o.params.MineCount, "mines", 0, "number of mines, overrides -difficulty")
	flag.Uint64Var(&o.seed, "seed", seed, "seed for mine placement, 0 picks one at random")
	flag.StringVar(&o.logFile, "log", config.LogFile(), "rotating log file")
	flag.Parse()
	return o, nil
}

func (o options) newRand() func() *rand.Rand {
	if o.seed == 0 {
		return mines.NewRand
	}
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(o.seed, o.seed))
	}
}

// gameParams resolves the board from flags. ok is false when nothing was
// given and the player should be asked.
func (o options) gameParams() (params mines.GameParams, ok bool, err error) {
	if o.params != (mines.GameParams{}) {
		return o.params, true, o.params.Validate()
	}
	if o.difficulty != "" {
		d, err := config.ParseDifficulty(o.difficulty)
		return d.GameParams, true, err
	}
	return mines.GameParams{}, false, nil
}

func setupLogging(o options) error {
	log.SetLevel(logrus.InfoLevel)
	if config.Development() {
		log.SetLevel(logrus.DebugLevel)
	}
	// Both front ends own the terminal; only a console session in
	// development mode also logs to stderr.
	if o.mode == "tui" || !config.Development() {
		log.SetOutput(io.Discard)
	}
	if o.logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   o.logFile,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      log.GetLevel(),
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return nil
}

func playConsole(o options) error {
	c := console.New(os.Stdin, os.Stdout, log)

	params, ok, err := o.gameParams()
	if err != nil {
		return err
	}
	if !ok {
		d, err := c.ChooseDifficulty()
		if err != nil {
			return err
		}
		params = d.GameParams
	}

	game, err := mines.New(params, o.newRand()())
	if err != nil {
		return err
	}
	phase, err := c.Play(game)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	if err != nil {
		return err
	}
	log.WithField("outcome", phase.String()).Info("game over")
	return nil
}

func playTUI(o options) error {
	// Zero params make the UI open its level menu.
	params, _, err := o.gameParams()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("unable to init screen: %w", err)
	}
	defer screen.Fini()

	ui, err := tui.New(screen, params, o.newRand(), log)
	if err != nil {
		return err
	}
	return ui.Run()
}

func main() {
	o, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := setupLogging(o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch o.mode {
	case "console":
		err = playConsole(o)
	case "tui":
		err = playTUI(o)
	default:
		err = fmt.Errorf("unknown mode %q, want console or tui", o.mode)
	}
	if err != nil {
		log.WithError(err).Error("minesweeper failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
