// simctl is a small operator tool for a running simulator server:
// print server info, start or stop the simulation, or watch the
// positions of a collection until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simverse/simverse/scene"
	"github.com/simverse/simverse/sim"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	serverURL := flag.String("url", "", "server WebSocket URL (overrides config)")
	interval := flag.Duration("interval", time.Second, "poll interval for watch")
	prec := flag.Int("prec", 2, "decimal digits for printed coordinates")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	config := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = sim.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load config:", err)
			os.Exit(1)
		}
	}
	if *serverURL != "" {
		config.ServerURL = *serverURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := sim.Connect(ctx, config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = sess.Disconnect() }()

	switch cmd := flag.Arg(0); cmd {
	case "info":
		err = runInfo(sess)
	case "start":
		err = sess.Start()
	case "stop":
		err = sess.Stop()
	case "watch":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "watch requires a collection name")
			os.Exit(2)
		}
		err = runWatch(ctx, sess, flag.Arg(1), *interval, *prec)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInfo(sess *sim.Session) error {
	version, err := sess.Version()
	if err != nil {
		return err
	}
	engine, err := sess.DynEngineName()
	if err != nil {
		return err
	}
	scenePath, err := sess.ScenePath()
	if err != nil {
		return err
	}
	simStep, err := sess.SimStep()
	if err != nil {
		return err
	}
	dynStep, err := sess.DynEngineStep()
	if err != nil {
		return err
	}
	running, err := sess.Running()
	if err != nil {
		return err
	}

	fmt.Println("server version: ", version)
	fmt.Println("dynamics engine:", engine)
	fmt.Println("scene:          ", scenePath)
	fmt.Printf("sim step:        %vs (dynamics %vs)\n", simStep, dynStep)
	fmt.Println("running:        ", running)
	return nil
}

func runWatch(ctx context.Context, sess *sim.Session, name string, interval time.Duration, prec int) error {
	coll, err := scene.NewCollection(sess, name)
	if err != nil {
		return err
	}
	names, err := coll.Names()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				positions, err := coll.Positions(prec)
				if err != nil {
					return err
				}
				for i, pos := range positions {
					label := fmt.Sprintf("#%d", i)
					if i < len(names) {
						label = names[i]
					}
					fmt.Printf("%-24s %v\n", label, pos)
				}
				fmt.Println()
			}
		}
	})
	return g.Wait()
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: simctl [flags] <command>

commands:
  info               print server version, engine, scene, and time steps
  start              start the simulation in synchronous mode
  stop               stop the simulation
  watch <collection> poll member positions until interrupted

flags:
`)
	flag.PrintDefaults()
}
