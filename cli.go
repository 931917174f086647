package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/decker502/confetti/pkg/app"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/service"
)

type daemonFlags struct {
	verbose     bool
	once        bool
	noBus       bool
	fireOnStart bool
}

func newRootCmd() *cobra.Command {
	flags := &daemonFlags{}

	root := &cobra.Command{
		Use:           "confetti",
		Short:         "Full-screen confetti overlay triggered over the session bus",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, flags)
		},
	}

	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Enable verbose logging")
	root.Flags().BoolVar(&flags.once, "once", false, "Exit after the first effect finishes")
	root.Flags().BoolVar(&flags.noBus, "no-bus", false, "Do not export the Fire method on the session bus")
	root.Flags().BoolVar(&flags.fireOnStart, "fire-on-start", false, "Fire once immediately after start-up")

	root.AddCommand(newFireCmd(), newOnceCmd(flags), newSettingsCmd())
	return root
}

func newFireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire",
		Short: "Ask the running daemon to fire confetti",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := service.ConnectSession()
			if err != nil {
				return err
			}
			defer conn.Close()
			return service.FireRemote(conn)
		},
	}
}

func newOnceCmd(flags *daemonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Fire confetti once without the session bus, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.once = true
			flags.noBus = true
			flags.fireOnStart = true
			return runDaemon(cmd, flags)
		},
	}
}

func newSettingsCmd() *cobra.Command {
	var verbose, fireOnStart bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the persisted daemon settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.OpenStore()
			if err != nil {
				return err
			}
			sm := config.NewSettingsManager(store)

			changed := false
			if cmd.Flags().Changed("verbose") {
				sm.SetVerbose(verbose)
				changed = true
			}
			if cmd.Flags().Changed("fire-on-start") {
				sm.SetFireOnStart(fireOnStart)
				changed = true
			}
			if changed {
				if err := sm.Save(); err != nil {
					return err
				}
			}

			s := sm.GetSettings()
			fmt.Fprintf(cmd.OutOrStdout(), "verbose: %v\nfireOnStart: %v\n", s.Verbose, s.FireOnStart)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Persist verbose logging")
	cmd.Flags().BoolVar(&fireOnStart, "fire-on-start", false, "Persist fire-on-start")
	return cmd
}

// loadSettings 读取持久化设置，命令行显式给出的标志优先
// 详细模式由设置决定，期间的日志先缓存，仅在详细模式下输出
func loadSettings(cmd *cobra.Command, flags *daemonFlags) {
	var pending bytes.Buffer
	log.SetOutput(&pending)
	defer func() {
		if !flags.verbose {
			log.SetOutput(io.Discard)
			return
		}
		stderr := cmd.ErrOrStderr()
		stderr.Write(pending.Bytes())
		log.SetOutput(stderr)
	}()

	store, err := config.OpenStore()
	if err != nil {
		log.Printf("[Main] Warning: %v (using defaults)", err)
	}
	s := config.NewSettingsManager(store).GetSettings()

	if !cmd.Flags().Changed("verbose") {
		flags.verbose = flags.verbose || s.Verbose
	}
	if !cmd.Flags().Changed("fire-on-start") {
		flags.fireOnStart = flags.fireOnStart || s.FireOnStart
	}
}

// configureLogging 日志只带时间戳，组件前缀（[Main]、[App] 等）由调用方写入
func configureLogging() {
	log.SetPrefix("")
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}

func runDaemon(cmd *cobra.Command, flags *daemonFlags) error {
	configureLogging()

	loadSettings(cmd, flags)

	cfg := app.Config{
		Verbose: flags.verbose,
		Once:    flags.once,
	}

	if !flags.noBus {
		conn, err := service.ConnectSession()
		if err != nil {
			return err
		}
		defer conn.Close()
		cfg.Bus = conn
	}

	a := app.NewApp(cfg)
	if err := a.Enable(); err != nil {
		return err
	}
	defer func() {
		if err := a.Disable(); err != nil {
			log.Printf("[Main] Disable: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		if sig, ok := <-sigCh; ok {
			log.Printf("[Main] Received signal %v, shutting down...", sig)
			a.Quit()
		}
	}()

	if flags.fireOnStart || flags.once {
		a.Fire()
	}

	return app.Run(a)
}
