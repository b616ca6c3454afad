package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/vimy/vimy-sc2/agent"
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ipc"
	"github.com/nstehr/vimy/vimy-sc2/rules"
)

const banner = `
██╗   ██╗██╗███╗   ███╗██╗   ██╗
██║   ██║██║████╗ ████║╚██╗ ██╔╝
██║   ██║██║██╔████╔██║ ╚████╔╝
╚██╗ ██╔╝██║██║╚██╔╝██║  ╚██╔╝
 ╚████╔╝ ██║██║ ╚═╝ ██║   ██║
  ╚═══╝  ╚═╝╚═╝     ╚═╝   ╚═╝

Doctrine-Driven SC2 Intelligence`

func main() {
	var (
		socketPath   = flag.String("socket", "/tmp/vimy-sc2.sock", "unix socket the bridge connects to (empty to disable)")
		wsAddr       = flag.String("ws", "", "http listen address for the websocket bridge, e.g. :8081 (empty to disable)")
		dataPath     = flag.String("data", "", "path to reference tables yaml (default: embedded tables)")
		doctrinePath = flag.String("doctrine", "", "path to doctrine yaml (default: built-in doctrine)")
		recordDir    = flag.String("record", "", "directory for per-session replay recordings (empty to disable)")
		gameStep     = flag.Uint("step", 0, "game loops per tick, overrides the bridge (0 keeps the bridge's value)")
		logLevel     = flag.String("log", "info", "log level: debug, info, warn or error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting vimy-sc2")

	data, err := loadData(*dataPath)
	if err != nil {
		slog.Error("failed to load reference tables", "path", *dataPath, "error", err)
		os.Exit(1)
	}

	doctrine := rules.DefaultDoctrine()
	if *doctrinePath != "" {
		doctrine, err = rules.LoadDoctrine(*doctrinePath)
		if err != nil {
			slog.Error("failed to load doctrine", "path", *doctrinePath, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("doctrine loaded", "name", doctrine.Name, "workerLimit", doctrine.WorkerLimit)

	if *recordDir != "" {
		if err := os.MkdirAll(*recordDir, 0o755); err != nil {
			slog.Error("failed to create record directory", "path", *recordDir, "error", err)
			os.Exit(1)
		}
	}

	// serve runs one bridge connection to completion.
	serve := func(t ipc.Transport) {
		engine, err := rules.NewEngine(rules.CompileDoctrine(doctrine))
		if err != nil {
			slog.Error("failed to compile rules", "error", err)
			t.Close()
			return
		}
		a := agent.New(data, engine, *recordDir, uint32(*gameStep))
		defer func() {
			if err := a.Close(); err != nil {
				slog.Warn("failed to close recording", "session", a.Session, "error", err)
			}
		}()
		ipc.NewConnection(t, a.Handlers()).ReadLoop()
		slog.Info("connection closed", "player", a.Player, "session", a.Session)
	}

	if *socketPath == "" && *wsAddr == "" {
		slog.Error("nothing to listen on: both -socket and -ws are empty")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *socketPath != "" {
		listener, err := listenUnix(*socketPath)
		if err != nil {
			slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
			os.Exit(1)
		}
		defer listener.Close()
		defer os.Remove(*socketPath)

		slog.Info("listening on domain socket", "path", *socketPath)
		go acceptLoop(ctx, listener, serve)
	}

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/ws", ipc.WSHandler(serve))
		srv := &http.Server{Addr: *wsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			slog.Info("listening for websocket bridge", "addr", *wsAddr, "path", "/ws")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("websocket server failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	<-ctx.Done()
	slog.Info("shutting down")
}

func loadData(path string) (*gamedata.GameData, error) {
	if path == "" {
		return gamedata.Default()
	}
	return gamedata.Load(path)
}

func listenUnix(path string) (net.Listener, error) {
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clean up socket: %w", err)
	}
	return net.Listen("unix", path)
}

func acceptLoop(ctx context.Context, listener net.Listener, serve func(ipc.Transport)) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Error("failed to accept connection", "error", err)
				continue
			}
		}
		slog.Info("new connection accepted")
		go serve(ipc.NewStreamTransport(conn))
	}
}
