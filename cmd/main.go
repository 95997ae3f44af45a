package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/logger"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/printer"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/receipt"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/services"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/telemetry"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/utils"
)

const (
	appName    = "Perfect Menu Print Dispatch"
	appVersion = "2.0.0"
)

// --- Main ---

func main() {
	envFile := flag.String("env", utils.DefaultEnvFile, "path to the .env configuration file")
	discover := flag.Bool("discover", false, "scan the local network for raw-print printers and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *discover {
		if err := runDiscovery(ctx, *envFile); err != nil {
			fmt.Fprintln(os.Stderr, "discovery failed:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile string) error {
	// 1. Load Configuration
	cfg, err := utils.LoadConfig(envFile)
	if err != nil {
		var cfgErr *utils.ConfigError
		if errors.As(err, &cfgErr) {
			for _, p := range cfgErr.Problems {
				fmt.Fprintln(os.Stderr, "config:", p)
			}
			return errors.New("invalid configuration, check " + envFile)
		}
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput}, cfg.DevMode)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// 2. Device identity
	deviceID := cfg.DeviceID
	if deviceID == "" {
		var created bool
		deviceID, created, err = utils.LoadOrCreateDeviceID(cfg.DeviceIDFile)
		switch {
		case err != nil:
			log.Warn("device id not persisted, using a temporary one", zap.Error(err))
		case created:
			log.Info("new device id created", zap.String("file", cfg.DeviceIDFile))
		}
	}

	log.Info("starting",
		zap.String("app", appName),
		zap.String("version", appVersion),
		zap.String("device", model.ShortID(deviceID, 8)),
		zap.String("api", cfg.APIURL),
	)

	shutdownTelemetry := telemetry.Setup(ctx, "printer-service", deviceID, log)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			log.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	// 3. API session
	api := services.NewAPIClient(cfg, deviceID, utils.EnvTokenStore{Path: cfg.EnvFile}, log)
	if err := api.TestConnection(ctx); err != nil {
		return fmt.Errorf("api connection: %w", err)
	}
	log.Info("api connection ok")

	// 4. Printer and dispatch pipeline
	transport, err := printer.New(cfg.Printer, log)
	if err != nil {
		return err
	}
	processed := services.NewProcessedOrders()
	dispatcher := services.NewDispatcher(api, transport, receipt.New(cfg.Receipt), processed, log)

	poller := services.NewPoller(api, dispatcher, transport, processed, deviceID,
		time.Duration(cfg.PollingInterval)*time.Millisecond, log)
	if err := poller.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	var renderer services.Renderer
	if cfg.Preview.Enabled {
		if ok, path := utils.CheckChrome(cfg.Preview.ChromePath); ok {
			renderer = services.NewPreviewRenderer(path, log)
			log.Info("image previews enabled", zap.String("chrome", path))
		} else {
			log.Warn(utils.ChromeInstallHint(runtime.GOOS))
		}
	}

	// 5. Producers
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           services.NewServer(dispatcher, transport, renderer, deviceID, log).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if cfg.EnablePolling {
		poller.Start(gctx)
		g.Go(func() error {
			<-gctx.Done()
			poller.Stop()
			return nil
		})
	} else {
		log.Info("polling disabled, printing only on request")
	}

	if cfg.WSURL != "" {
		feed := services.NewFeed(cfg.WSURL, api.AccessToken, deviceID, dispatcher, log)
		g.Go(func() error { return feed.Run(gctx) })
	}

	log.Info("system running", zap.String("printer", transport.Describe()))

	err = g.Wait()
	if !cfg.EnablePolling {
		if derr := transport.Disconnect(); derr != nil {
			log.Warn("printer disconnect failed", zap.Error(derr))
		}
	}
	log.Info("shut down")
	return err
}

// runDiscovery scans the local /24 for raw-print listeners and offers to
// write the chosen one into the env file.
func runDiscovery(ctx context.Context, envFile string) error {
	scanner := printer.NewScanner()
	subnet, found, err := scanner.DiscoverLocal(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Scanned subnet: %s.0/24\n", subnet)

	if len(found) == 0 {
		fmt.Println("No printers answered on port", scanner.Port)
		return nil
	}

	fmt.Printf("Found %d printer(s):\n", len(found))
	for i, ip := range found {
		fmt.Printf("  [%d] %s:%d\n", i+1, ip, scanner.Port)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("Use which printer? (1-%d, empty to skip): ", len(found))
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(found) {
		return fmt.Errorf("invalid choice %q", answer)
	}

	err = utils.WriteEnvValues(envFile, map[string]string{
		"PRINTER_TYPE": string(model.PrinterTypeThermal),
		"PRINTER_IP":   found[n-1],
		"PRINTER_PORT": strconv.Itoa(scanner.Port),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s to %s\n", found[n-1], envFile)
	return nil
}
