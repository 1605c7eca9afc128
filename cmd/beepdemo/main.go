// Command beepdemo drives the engine against a real PortAudio output
// device: it schedules a short batch of notes and a marker event, then
// blocks until the marker fires before exiting.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/doismellburning/beepengine/internal/engine"
	"github.com/doismellburning/beepengine/internal/enginecfg"
	"github.com/doismellburning/beepengine/internal/enginelog"
	"github.com/doismellburning/beepengine/internal/sink"
)

func main() {
	var configPath = pflag.StringP("config", "c", "", "Path to a YAML config file.")
	var device = pflag.StringP("device", "d", "", "Output device name override.")
	var logLevel = pflag.StringP("log-level", "l", "", "Log level: debug, info, warn, error.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - render a demo tone sequence through the beep engine\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	cfg := enginecfg.Default()
	if *configPath != "" {
		loaded, err := enginecfg.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "beepdemo: %s\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := enginelog.New(os.Stderr, level)
	logger.Info("starting", "stamp", enginelog.Stamp(time.Now()), "device", cfg.Device)

	opener := sink.PortAudioOpener{SampleRateHint: 48000}

	var opts []engine.Option
	if cfg.BufferSizeOverride > 0 {
		opts = append(opts, engine.WithBufferSize(cfg.BufferSizeOverride))
	}

	e := engine.New(opener, logger, opts...)
	if !e.Start() {
		logger.Error("engine failed to start")
		os.Exit(1)
	}
	defer e.Stop()

	b := engine.NewBatch()
	b.AddNote(0.0, 440.0, 0.2, 0.3)
	b.AddNote(0.35, 554.37, 0.2, 0.3)
	b.AddNote(0.70, 659.25, 0.2, 0.45)
	b.AddEvent(1.2, demoCompleteEvent)
	e.SubmitBatch(b)

	if ok := e.WaitForEvent(demoCompleteEvent); !ok {
		logger.Warn("demo sequence did not complete cleanly")
		os.Exit(1)
	}
	logger.Info("demo sequence complete")
}

const demoCompleteEvent uint32 = 0x4265_6570 // "Beep"
