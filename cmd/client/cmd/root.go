package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reviewroom/cmd/client/cmd/auth"
	"reviewroom/cmd/client/cmd/record"
	"reviewroom/cmd/client/cmd/room"
	"reviewroom/cmd/client/cmd/types"
	"reviewroom/internal/app/client"
	"reviewroom/internal/app/client/config"
	"reviewroom/internal/utils/logger"
)

var (
	cfgFile   string
	debug     bool
	serverURL string

	// opened is closed by the finalizer whether or not the command failed
	opened io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "reviewroom",
	Short: "Review Room - keep movie and book reviews and share them",
	Long: `Review Room keeps your personal movie and book reviews on a server and
lets you share a selection of them through a room, optionally behind a
password.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		stop()
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log := logger.Discard()
	if debug {
		log = logger.New(cfg.Env)
	}

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	opened = app
	cmd.SetContext(types.WithApp(cmd.Context(), app))
	return nil
}

func closeApp() {
	if opened == nil {
		return
	}
	if err := opened.Close(); err != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("close local state: %v", err))
	}
	opened = nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".reviewroom"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return config.Load()
}

func init() {
	cobra.OnFinalize(closeApp)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.reviewroom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log requests and responses")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server address, host:port")

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.StatusCmd)

	rootCmd.AddCommand(record.RecordCmd)
	record.RecordCmd.AddCommand(record.AddCmd)
	record.RecordCmd.AddCommand(record.ListCmd)
	record.RecordCmd.AddCommand(record.SearchCmd)
	record.RecordCmd.AddCommand(record.DeleteCmd)

	rootCmd.AddCommand(room.RoomCmd)
	room.RoomCmd.AddCommand(room.SelectCmd)
	room.RoomCmd.AddCommand(room.UnselectCmd)
	room.RoomCmd.AddCommand(room.SelectionCmd)
	room.RoomCmd.AddCommand(room.ClearCmd)
	room.RoomCmd.AddCommand(room.CreateCmd)
	room.RoomCmd.AddCommand(room.ListCmd)
	room.RoomCmd.AddCommand(room.OpenCmd)
	room.RoomCmd.AddCommand(room.ViewCmd)
}
