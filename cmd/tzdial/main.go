package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/tzdial/config"
	"github.com/lixenwraith/tzdial/dial"
	"github.com/lixenwraith/tzdial/engine"
	"github.com/lixenwraith/tzdial/haptic"
	"github.com/lixenwraith/tzdial/metrics"
	"github.com/lixenwraith/tzdial/timezone"
)

var (
	configFlag  = flag.String("config", "", "YAML tuning file")
	debugFlag   = flag.Bool("debug", false, "Write a debug log to logs/tzdial.log")
	metricsFlag = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	muteFlag    = flag.Bool("mute", false, "Disable audible haptic clicks")
	citiesFlag  = flag.String("cities", "", "Cities as CODE=Zone,CODE=Zone (overrides config)")
)

func main() {
	// Panic Recovery: ensure the terminal is reset even if the host crashes
	defer func() {
		if r := recover(); r != nil {
			handleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tzdial: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	tuning, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *muteFlag {
		tuning.Haptic.Muted = true
	}
	if *citiesFlag != "" {
		tuning.Cities = *citiesFlag
	}

	cities := dial.DefaultCities
	if tuning.Cities != "" {
		if cities, err = dial.ParseCities(tuning.Cities); err != nil {
			return err
		}
	}

	zones := timezone.NewIANA()
	homeID := "Local"
	if tuning.Home != "" {
		if _, ok := zones.Location(tuning.Home); !ok {
			return fmt.Errorf("unknown home zone %q", tuning.Home)
		}
		homeID = tuning.Home
	}

	var collector *metrics.Collector
	if *metricsFlag != "" {
		if collector, err = metrics.NewCollector(prometheus.NewRegistry()); err != nil {
			return err
		}
		srv := serveMetrics(*metricsFlag, collector)
		defer shutdown(srv)
	}

	d, err := dial.New(cities, zones, tuning.Orbit, dial.Options{Home: homeID, Observer: collector})
	if err != nil {
		return err
	}

	// Haptics: audible clicks when a device exists, always debounced
	beepSink := haptic.NewBeepSink()
	if !tuning.Haptic.Muted {
		if err := beepSink.Initialize(); err != nil {
			log.Printf("tzdial: audio unavailable, haptics silent: %v", err)
		}
	}
	defer beepSink.Cleanup()
	pulses := haptic.NewCoordinator(beepSink, nil, tuning.Haptic.Debounce)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	crashScreen = screen
	defer screen.Fini()
	screen.EnableMouse()

	a := &app{screen: screen, dial: d, rings: tuning.Orbit}
	a.resize()

	rotor, err := engine.NewRotor(engine.Options{
		Config:   &tuning.Engine,
		Zones:    zones,
		Home:     homeID,
		Haptics:  pulses,
		Preview:  engine.PreviewFunc(a.setPreview),
		Observer: collector.ObserveEvent,
	})
	if err != nil {
		return err
	}

	d.Refresh(time.Now())
	loop := engine.NewLoop(rotor, engine.LoopOptions{
		TickInterval: tuning.Loop.TickInterval,
		WallInterval: tuning.Loop.WallInterval,
		OnWallTick:   func(now time.Time) { d.Refresh(now) },
		OnError: func(err error) {
			if !errors.Is(err, engine.ErrNotDragging) {
				log.Printf("tzdial: %v", err)
			}
		},
		Spawn: goSafe,
	})
	a.loop = loop

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	goSafe(func() { loop.Run(ctx) })

	// Open on the current time
	loop.ResetToNow()

	a.run()

	delivered, dropped := pulses.Stats()
	log.Printf("tzdial: exiting, %d pulses delivered, %d debounced", delivered, dropped)
	return nil
}

func serveMetrics(addr string, c *metrics.Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	goSafe(func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("tzdial: metrics server: %v", err)
		}
	})
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
