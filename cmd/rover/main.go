// cmd/rover/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rover-controller/internal/board"
	"github.com/tamzrod/rover-controller/internal/command"
	"github.com/tamzrod/rover-controller/internal/config"
	"github.com/tamzrod/rover-controller/internal/dispatch"
	"github.com/tamzrod/rover-controller/internal/drive"
	"github.com/tamzrod/rover-controller/internal/encoder"
	"github.com/tamzrod/rover-controller/internal/events"
	"github.com/tamzrod/rover-controller/internal/mainlogic"
	"github.com/tamzrod/rover-controller/internal/morse"
	"github.com/tamzrod/rover-controller/internal/telemetry"
)

// Service scheduling priorities; the lowest value drains first.
const (
	prioMainLogic = 0
	prioDrive     = 1
	prioEncoder   = 2
	prioCommand   = 3
	prioMorse     = 4
	prioDecoder   = 5
)

// simFullSpeedEdgeHz is the shaft edge rate at full commanded speed,
// matching a smoothed lapse of 500 capture ticks at 78125 Hz.
const simFullSpeedEdgeHz = 156

func main() {
	if len(os.Args) < 2 {
		os.Stderr.WriteString("usage: rover <config.yaml>\n")
		os.Exit(2)
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	if lvl, err := zerolog.ParseLevel(cfg.Controller.LogLevel); err == nil {
		log = log.Level(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	must := func(err error) {
		if err != nil {
			log.Fatal().Err(err).Msg("wiring failed")
		}
	}

	// --------------------
	// Build the services
	// --------------------

	bd := board.NewSim()

	d := dispatch.New(dispatch.Options{
		Tick: time.Duration(cfg.Controller.TickMs) * time.Millisecond,
		Log:  log.With().Str("component", "dispatch").Logger(),
	})
	queueCap := cfg.Controller.QueueDepth

	drv := drive.New(bd.LeftMotor(), bd.RightMotor(), log.With().Str("component", "drive").Logger())

	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	logic := mainlogic.New(mainlogic.Config{
		Self:       events.ServiceMainLogic,
		MoveTimer:  events.TimerSimpleMove,
		TapeTimer:  events.TimerTapeSearch,
		AlignTimer: events.TimerBeaconAlign,
		Timing: mainlogic.Timing{
			Rotate90:    d.TicksFor(ms(cfg.Motion.Rotate90Ms)),
			Rotate45:    d.TicksFor(ms(cfg.Motion.Rotate45Ms)),
			Drive:       d.TicksFor(ms(cfg.Motion.DriveMs)),
			TapeSearch:  d.TicksFor(ms(cfg.Motion.TapeSearchMs)),
			BeaconAlign: d.TicksFor(ms(cfg.Motion.BeaconAlignMs)),
		},
		Speeds: mainlogic.Speeds{Full: cfg.Motion.FullSpeed, Half: cfg.Motion.HalfSpeed},
	}, drv, d, d, bd.Beacon(), log.With().Str("component", "mainlogic").Logger())

	capture := encoder.NewCapture(d, events.ServiceEncoder)
	enc := encoder.NewService(capture, bd.Bar(), encoder.Config{
		TimerClockHz: cfg.Encoder.TimerClockHz,
		EdgesPerRev:  cfg.Encoder.EdgesPerRev,
		MinLapse:     cfg.Encoder.MinLapse,
		MaxLapse:     cfg.Encoder.MaxLapse,
		ReportTimer:  events.TimerRPMReport,
	}, log.With().Str("component", "encoder").Logger())

	must(d.Register(events.ServiceMainLogic, prioMainLogic, queueCap, logic))
	must(d.Register(events.ServiceDrive, prioDrive, queueCap, drv))
	must(d.Register(events.ServiceEncoder, prioEncoder, queueCap, enc))

	must(d.BindTimer(events.TimerSimpleMove, events.ServiceMainLogic))
	must(d.BindTimer(events.TimerTapeSearch, events.ServiceMainLogic))
	must(d.BindTimer(events.TimerBeaconAlign, events.ServiceMainLogic))
	must(d.BindTimer(events.TimerRPMReport, events.ServiceEncoder))
	must(d.ArmRepeating(events.TimerRPMReport, d.TicksFor(ms(cfg.Encoder.ReportIntervalMs))))

	// ---- command link (optional) ----

	var cmdUp func() bool
	if cfg.Command.Link != config.LinkNone {
		cmdSvc, closeCmd, err := command.Build(cfg.Command, d, log.With().Str("component", "command").Logger())
		if err != nil {
			log.Fatal().Err(err).Msg("command link build failed")
		}
		defer closeCmd()

		must(d.Register(events.ServiceCommand, prioCommand, queueCap, cmdSvc))
		must(d.BindTimer(events.TimerCommandPoll, events.ServiceCommand))
		must(d.ArmRepeating(events.TimerCommandPoll, d.TicksFor(ms(cfg.Command.PollIntervalMs))))
		cmdUp = cmdSvc.Up
	}

	// ---- morse pipeline (optional) ----

	var elements *morse.Elements
	if cfg.Morse.Enabled {
		elements = morse.NewElements(
			morse.Config{Self: events.ServiceMorse, Out: events.ServiceDecoder},
			d,
			log.With().Str("component", "morse").Logger(),
		)
		dec := morse.NewDecoder(log.With().Str("component", "decoder").Logger())

		must(d.Register(events.ServiceMorse, prioMorse, queueCap, elements))
		must(d.Register(events.ServiceDecoder, prioDecoder, queueCap, dec))

		d.AddChecker(board.EdgeChecker(bd.MorseIn(), d, events.ServiceMorse, d.Time))
		d.AddChecker(board.RiseChecker(bd.ResetButton(), d, events.ServiceMorse, events.Event{Type: events.TypeCharReset}))
	}

	// ---- sensor checkers ----

	d.AddChecker(board.RiseChecker(bd.Beacon(), d, events.ServiceMainLogic, events.Event{Type: events.TypeBeaconDetected}))
	d.AddChecker(board.RiseChecker(bd.Tape(), d, events.ServiceMainLogic, events.Event{Type: events.TypeTapeDetected}))

	// ---- telemetry ----

	src := telemetry.NewSource(telemetry.Probes{
		Health: func() uint16 {
			switch {
			case cmdUp == nil:
				return telemetry.HealthDisabled
			case cmdUp():
				return telemetry.HealthOK
			}
			return telemetry.HealthError
		},
		LogicState:  func() uint16 { return uint16(logic.State()) },
		LastCommand: func() uint16 { return uint16(logic.LastCommand()) },
		MorseState: func() uint16 {
			if elements == nil {
				return 0
			}
			return uint16(elements.State())
		},
	})
	enc.OnReport(src.ObserveRPM)

	if cfg.Telemetry.Sink != config.SinkNone {
		pub, closePub, err := telemetry.Build(cfg.Telemetry, src, log.With().Str("component", "telemetry").Logger())
		if err != nil {
			log.Fatal().Err(err).Msg("telemetry build failed")
		}
		defer closePub()
		go pub.Run(ctx)
	}

	// --------------------
	// Run
	// --------------------

	if err := d.Start(); err != nil {
		log.Fatal().Err(err).Msg("start failed")
	}

	go bd.RunEncoder(ctx, int(cfg.Encoder.TimerClockHz), simFullSpeedEdgeHz, capture.OnEdge, capture.OnWrap)

	log.Info().Str("config", os.Args[1]).Msg("rover controller running")

	if err := d.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("dispatcher stopped")
	}
	log.Info().Msg("shutdown")
}
