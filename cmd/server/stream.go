package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"portfolio-backend/internal/generator"
	"portfolio-backend/internal/sse"
	"portfolio-backend/internal/stream"
	"portfolio-backend/pkg/config"
)

var errEnoughFrames = errors.New("frame count reached")

func newStreamCmd(v *viper.Viper) *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:       "stream <feed>",
		Short:     "Write a feed to stdout as SSE frames",
		Long:      "stream runs one feed locally and prints the exact frames /stream/<feed> would send. Feeds: metrics, training, predictions, pipeline, matrix, hack, 3d.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: stream.Feeds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(v)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runStream(ctx, cmd, args[0], streamOptions(cfg), count, seed)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many frames (0 streams until interrupted)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible values (0 picks a random seed)")
	return cmd
}

func runStream(ctx context.Context, cmd *cobra.Command, feed string, opts stream.Options, count int, seed uint64) error {
	var rng *rand.Rand
	if seed != 0 {
		rng = generator.NewSeededRand(seed)
	}
	driver, err := stream.New(feed, opts, rng)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	writer := sse.NewWriter(out)

	sent := 0
	sink := stream.SinkFunc(func(ctx context.Context, record any) error {
		if err := writer.Send(ctx, record); err != nil {
			return err
		}
		sent++
		if count > 0 && sent >= count {
			return errEnoughFrames
		}
		return nil
	})

	err = driver.Run(ctx, sink)
	switch {
	case err == nil, errors.Is(err, errEnoughFrames), errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}
