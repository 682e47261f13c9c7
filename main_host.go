//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkwidgets/app"
	"sparkwidgets/hal"
	"sparkwidgets/sparkos/proto"
	"sparkwidgets/sparkos/tasks/convert/rates"

	"github.com/spf13/afero"
)

func main() {
	var cfg hal.HeadlessConfig
	var appName, keyScript, arg, ratesPath string
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&cfg.LogFrames, "log-frames", false, "Headless: log the frame checksum whenever it changes.")
	flag.StringVar(&appName, "app", "", "Widget to open at start: calc, convert or timer.")
	flag.StringVar(&arg, "arg", "", "Key script handed to the -app widget when it opens.")
	flag.StringVar(&keyScript, "keys", "", "Key presses to inject at start ('\\n' is Enter).")
	flag.StringVar(&ratesPath, "rates", "", "Currency rate file (CODE RATE [NAME] per line).")
	flag.Parse()

	acfg, err := buildConfig(afero.NewOsFs(), appName, arg, ratesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if keyScript != "" {
		cfg.Setup = func(h hal.HAL) { hal.Inject(h, keyScript) }
	}
	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, acfg) }

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildConfig(fs afero.Fs, appName, arg, ratesPath string) (app.Config, error) {
	var cfg app.Config
	id, ok := proto.ParseAppID(appName)
	if !ok {
		return cfg, fmt.Errorf("unknown -app %q (want calc, convert or timer)", appName)
	}
	cfg.InitialApp = id
	cfg.Arg = arg
	if ratesPath != "" {
		t, err := rates.Load(fs, ratesPath, nil)
		if err != nil {
			return cfg, err
		}
		cfg.Rates = t
	}
	return cfg, nil
}
