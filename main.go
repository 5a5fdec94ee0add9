package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"

	"LocalPaint/internal/config"
	"LocalPaint/internal/net"
	"LocalPaint/internal/ui"
)

const usage = `usage: localpaint [-config file] [serve|desktop|discover] [flags]

  serve      serve the drawing page to browsers (default)
  desktop    open the desktop window
  discover   list LocalPaint servers on the local network
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("localpaint", flag.ContinueOnError)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := global.String("config", "", "TOML configuration file")
	if err := global.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "localpaint: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	logger := cfg.Logger("localpaint", os.Stderr)

	cmd, rest := "serve", global.Args()
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(cfg, logger, rest)
	case "desktop":
		err = runDesktop(cfg, logger, rest)
	case "discover":
		err = runDiscover(cfg, logger, rest)
	default:
		fmt.Fprintf(os.Stderr, "localpaint: unknown command %q\n", cmd)
		global.Usage()
		return 2
	}
	if err != nil {
		logger.Error("exiting", "command", cmd, "error", err)
		return 1
	}
	return 0
}

func runServe(cfg *config.Config, logger hclog.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	listen := fs.String("listen", cfg.Server.Listen, "address to listen on")
	advertise := fs.Bool("advertise", cfg.Server.Advertise, "announce the server over mDNS")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Server.Listen = *listen
	cfg.Server.Advertise = *advertise

	if url, err := net.ShareURL(cfg.Server.Listen); err != nil {
		logger.Warn("no share link", "error", err)
	} else {
		logger.Info("open in a browser", "url", url)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return net.NewServer(cfg, logger.Named("server")).ListenAndServe(ctx)
}

// runDesktop opens the window. With -serve the browser page is served
// alongside; every browser still gets its own board.
func runDesktop(cfg *config.Config, logger hclog.Logger, args []string) error {
	fs := flag.NewFlagSet("desktop", flag.ContinueOnError)
	serve := fs.Bool("serve", false, "also serve the browser page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	shareURL := ""
	if *serve {
		ctx, stop := context.WithCancel(context.Background())
		defer stop()
		srv := net.NewServer(cfg, logger.Named("server"))
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				logger.Error("server stopped", "error", err)
			}
		}()
		if url, err := net.ShareURL(cfg.Server.Listen); err == nil {
			shareURL = url
		}
	}

	ui.RunApp(cfg, logger.Named("desktop"), shareURL)
	return nil
}

func runDiscover(cfg *config.Config, logger hclog.Logger, args []string) error {
	fs := flag.NewFlagSet("discover", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 3*time.Second, "how long to listen for answers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	found := 0
	err := net.Browse(ctx, cfg.Server.Service, *timeout, func(addr string) {
		found++
		fmt.Printf("http://%s/\n", addr)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("discovery finished", "servers", found)
	return nil
}
