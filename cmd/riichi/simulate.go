package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"riichi/cmd/riichi/app"
	"riichi/common/config"
	"riichi/common/log"
)

func simulateCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "用基准决策者跑完整对局",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configFile)
			if err != nil {
				return err
			}
			config.Conf = conf
			if cmd.Flags().Changed("metricPort") {
				conf.MetricPort = opts.MetricPort
			}
			opts.ConfigFile = configFile
			log.Debug("配置文件: %+v", conf)

			sum, err := app.Run(context.Background(), conf, opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "games=%d hands=%d\n", sum.Games, sum.Hands)
			for seat := range sum.RankSum {
				fmt.Fprintf(w, "seat %d: avg rank %.2f, avg score %.1f\n",
					seat, sum.AvgRank(seat), sum.AvgScore(seat))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Games, "games", 1, "number of games")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "wall seed of the first game, 0 for random")
	cmd.Flags().StringVar(&opts.Provider, "provider", "baseline", "decision provider: baseline, riichi, random")
	cmd.Flags().IntVar(&opts.MetricPort, "metricPort", 0, "statsviz port, 0 to disable")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "reload rule options when the resource file changes")
	return cmd
}
