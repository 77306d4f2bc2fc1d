package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"swipetabs/internal/config"
	"swipetabs/internal/eventbus"
	"swipetabs/internal/ui"
)

type options struct {
	configPath  string
	strategy    string
	platform    string
	logPath     string
	writeConfig string
}

func main() {
	// Environment defaults may come from a .env file next to the binary
	_ = godotenv.Load()

	opts := options{
		configPath: os.Getenv("SWIPETABS_CONFIG"),
		logPath:    envOr("SWIPETABS_LOG", "swipetabs.log"),
	}

	cmd := &cobra.Command{
		Use:           "swipetabs",
		Short:         "Swipeable tabs in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", opts.configPath, "config file (.toml or .yaml)")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "tab bar strategy: drag or native")
	cmd.Flags().StringVarP(&opts.platform, "platform", "p", "", "velocity scale platform, e.g. terminal or android")
	cmd.Flags().StringVar(&opts.logPath, "log", opts.logPath, "log file")
	cmd.Flags().StringVar(&opts.writeConfig, "write-config", "", "write the effective config to this path and exit")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Set up logging
	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Set up event forwarding to UI before anything publishes
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventIndexChanged,
		eventbus.EventScrollSettled,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, forward)
	}

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadConfig(configSvc, opts)
	if err != nil {
		return err
	}

	if opts.writeConfig != "" {
		if err := configSvc.SaveToPath(cfg, opts.writeConfig); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", opts.writeConfig)
		return nil
	}

	uiModel, err := ui.NewModel(bus, cfg)
	if err != nil {
		return err
	}
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// loadConfig reads the config file, falling back to defaults, and applies the
// command line overrides
func loadConfig(svc config.ConfigService, opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = svc.LoadFromPath(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = svc.Load()
		if err != nil {
			log.Printf("Error loading config: %v", err)
			cfg = config.DefaultConfig()
		}
	}

	if opts.strategy != "" {
		cfg.Strategy = opts.strategy
	}
	if opts.platform != "" {
		cfg.Platform = opts.platform
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
