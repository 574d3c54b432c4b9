package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/graphweave/graphweave/internal/profile"
	"github.com/graphweave/graphweave/server"
	"github.com/graphweave/graphweave/internal/observability"
)

var version = "0.1.0"

const greetingBanner = `
┌─┐┬─┐┌─┐┌─┐┬ ┬┬ ┬┌─┐┌─┐┬  ┬┌─┐
│ ┬├┬┘├─┤├─┘├─┤│││├┤ ├─┤└┐┌┘├┤
└─┘┴└─┴ ┴┴  ┴ ┴└┴┘└─┘┴ ┴ └┘ └─┘
`

var rootCmd = &cobra.Command{
	Use:   "graphweave",
	Short: "Turn free-form text into an interactive knowledge graph",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return err
		}

		logger := observability.NewLogger(instanceProfile.IsDev())
		slog.SetDefault(logger)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s, err := server.NewServer(instanceProfile, logger)
		if err != nil {
			slog.Error("failed to create server", slog.String("error", err.Error()))
			return err
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
			s.Shutdown(ctx)
			cancel()
		}()

		printGreetings(instanceProfile)

		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", slog.String("error", err.Error()))
			return err
		}

		<-ctx.Done()
		return nil
	},
}

func printGreetings(p *profile.Profile) {
	fmt.Print(greetingBanner)
	fmt.Printf("version %s, mode %s\n", p.Version, p.Mode)
	fmt.Printf("listening on http://%s:%d\n", p.Addr, p.Port)
	fmt.Println()
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory holding the optional secrets file")

	if err := viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("graphweave")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
