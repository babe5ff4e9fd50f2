package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vennekilde/go-ordmap/ordmap"
)

var (
	configPath string
	cfg        *Config
)

// RootCmd is the ordmap command line tool.
var RootCmd = &cobra.Command{
	Use:           "ordmap",
	Short:         "Insertion ordered map tool",
	Long:          `ordmap builds insertion ordered maps and moves their entries through AMQP queues.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		return SetGlobalLogger(cfg.Log.Level, cfg.Log.Encoder, cfg.Log.Format)
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the put/get/iterate walkthrough",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := cfg.Map.MapOptions(zap.L().Named("ordmap"))
		if err != nil {
			return err
		}
		return runDemo(cmd.OutOrStdout(), opts...)
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish key=value...",
	Short: "Publish entries to the AMQP queue in insertion order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newConfiguredMap(cmd)
		if err != nil {
			return err
		}
		defer m.Delete()
		if err := putEntryArgs(m, args); err != nil {
			return err
		}

		opts := newAMQPConnOpts(cfg.AMQP)
		opts.sendQueue = cfg.AMQP.Queue
		conn, err := newAMQPConn(opts)
		if err != nil {
			return err
		}
		defer conn.Close()

		report, err := publishMap(cmd.Context(), conn.sender, m, cfg.AMQP.SendTimeout)
		if report != nil {
			report.WriteTo(cmd.ErrOrStderr())
		}
		return err
	},
}

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Drain the AMQP queue into a map and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newConfiguredMap(cmd)
		if err != nil {
			return err
		}
		defer m.Delete()

		opts := newAMQPConnOpts(cfg.AMQP)
		opts.recvQueue = cfg.AMQP.Queue
		conn, err := newAMQPConn(opts)
		if err != nil {
			return err
		}
		defer conn.Close()

		report, err := drainInto(cmd.Context(), conn.receiver, m, cfg.AMQP.DrainTimeout)
		m.Print()
		if report != nil {
			report.WriteTo(cmd.ErrOrStderr())
		}
		return err
	},
}

func newConfiguredMap(cmd *cobra.Command) (*ordmap.OrderedMap, error) {
	opts, err := cfg.Map.MapOptions(zap.L().Named("ordmap"))
	if err != nil {
		return nil, err
	}
	return ordmap.New(append(opts, ordmap.WithOutput(cmd.OutOrStdout()))...), nil
}

// putEntryArgs puts every key=value argument into m. The value follows the
// last '=' so keys may contain '='.
func putEntryArgs(m ordmap.Map, args []string) error {
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i < 0 {
			return fmt.Errorf("invalid entry %q, expected key=value", arg)
		}
		value, err := strconv.Atoi(arg[i+1:])
		if err != nil {
			return fmt.Errorf("invalid value of entry %q: %w", arg, err)
		}
		if err := m.Put(arg[:i], value); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a yaml configuration file")
	RootCmd.AddCommand(demoCmd, publishCmd, consumeCmd)

	envHelp, _ := cleanenv.GetDescription(&Config{}, nil)
	RootCmd.SetUsageTemplate(RootCmd.UsageTemplate() + "\n" + envHelp + "\n")
}

func main() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
