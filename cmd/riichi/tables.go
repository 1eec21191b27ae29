package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"riichi/common/log"
	"riichi/engine/tables"
)

var errTablesMismatch = errors.New("和牌表与重新构建的结果不一致")

func tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "和牌表/听牌表",
	}

	var out string
	build := &cobra.Command{
		Use:   "build",
		Short: "构建和牌表并保存",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			t := tables.Build()
			log.Info("和牌表构建完成 win=%d tenpai=%d, 耗时 %s", len(t.Win), len(t.Tenpai), time.Since(start))
			if err := t.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: win=%d tenpai=%d\n", out, len(t.Win), len(t.Tenpai))
			return nil
		},
	}
	build.Flags().StringVar(&out, "out", "tables.bin", "output file")

	var in string
	check := &cobra.Command{
		Use:   "check",
		Short: "校验已保存的和牌表",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tables.Load(in)
			if err != nil {
				return err
			}
			if err := compareTables(t, tables.Build()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, win=%d tenpai=%d\n", in, len(t.Win), len(t.Tenpai))
			return nil
		},
	}
	check.Flags().StringVar(&in, "in", "tables.bin", "input file")

	cmd.AddCommand(build, check)
	return cmd
}

// compareTables 逐项比较，拆解顺序也必须一致
func compareTables(got, want *tables.Tables) error {
	if len(got.Win) != len(want.Win) || len(got.Tenpai) != len(want.Tenpai) {
		return fmt.Errorf("%w: win %d/%d tenpai %d/%d", errTablesMismatch,
			len(got.Win), len(want.Win), len(got.Tenpai), len(want.Tenpai))
	}
	for k, ps := range want.Win {
		gs, ok := got.Win[k]
		if !ok || len(gs) != len(ps) {
			return fmt.Errorf("%w: key %#x", errTablesMismatch, k)
		}
		for i := range ps {
			if gs[i] != ps[i] {
				return fmt.Errorf("%w: key %#x payload %d", errTablesMismatch, k, i)
			}
		}
	}
	for k := range want.Tenpai {
		if !got.IsTenpaiKey(k) {
			return fmt.Errorf("%w: tenpai key %#x", errTablesMismatch, k)
		}
	}
	return nil
}
