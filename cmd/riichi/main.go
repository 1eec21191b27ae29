package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"riichi/common/log"
)

var (
	configFile string
	logLevel   string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "riichi",
	Short: "riichi 四人立直麻将规则引擎",
	Long:  `riichi 四人立直麻将规则引擎：和牌表构建、副露编码解析与对局模拟`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.InitLog("riichi", logLevel)
		if quiet {
			log.SetOutput(io.Discard)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "resource", "", "resource file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "discard log output")

	rootCmd.AddCommand(tablesCmd(), meldCmd(), simulateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
