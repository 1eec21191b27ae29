package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"riichi/common/log"
	"riichi/engine/meld"
)

func meldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meld",
		Short: "副露编码",
	}
	decode := &cobra.Command{
		Use:   "decode <code>...",
		Short: "解析副露编码，坏记录跳过",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := make([]int, 0, len(args))
			for _, a := range args {
				c, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("编码 %q 不是整数: %w", a, err)
				}
				codes = append(codes, c)
			}
			melds, skipped := meld.DecodeAll(codes)
			for _, i := range skipped {
				log.Warn("副露编码 %d 无法解析，已跳过", codes[i])
			}
			w := cmd.OutOrStdout()
			for _, m := range melds {
				fmt.Fprintf(w, "%s\tclaimed=%s\n", m, m.Claimed)
			}
			return nil
		},
	}
	cmd.AddCommand(decode)
	return cmd
}
