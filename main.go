package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	flagConfig   string
	flagMarker   string
	flagParallel int
	flagShow     bool
	flagTrace    bool
	flagJSON     bool
	flagVerbose  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gridclear [files...]",
		Short: "逐步移除网格中可触达的格子并统计数量",
		Long: `读取由 '@' 表示占用格子的文本网格。
相邻 8 格中被占用的少于 4 个的格子可以移除；移除后重新检查相邻格子，直到不能再移除。
输出第一轮可移除的数量和最终一共可移除的数量。

不指定文件或文件为 "-" 时从标准输入读取。`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runClear,
	}

	f := root.Flags()
	f.StringVarP(&flagConfig, "config", "c", defaultConfigFile, "配置文件路径")
	f.StringVarP(&flagMarker, "marker", "m", "", "代表占用格子的字符（覆盖配置）")
	f.IntVarP(&flagParallel, "parallel", "p", 0, "同时处理的文件数（覆盖配置）")
	f.BoolVar(&flagShow, "show", false, "显示清理前后的网格")
	f.BoolVar(&flagTrace, "trace", false, "按顺序显示每一个被移除的格子")
	f.BoolVar(&flagJSON, "json", false, "每个输入输出一行 JSON")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "输出 debug 日志")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "gridclear", version)
		},
	})
	return root
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("marker") {
		cfg.Marker = flagMarker
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = flagParallel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging, flagVerbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if len(args) == 0 {
		args = []string{"-"}
	}

	runner := &Runner{
		Marker:        cfg.MarkerByte(),
		Parallel:      cfg.Parallel,
		MaxInputBytes: cfg.MaxInputBytes,
		Show:          flagShow,
		Trace:         flagTrace,
		Logger:        logger,
	}
	results, err := runner.Run(cmd.Context(), args)
	if err != nil {
		return err
	}
	if flagJSON {
		return WriteResultsJSON(cmd.OutOrStdout(), results)
	}
	return WriteResults(cmd.OutOrStdout(), results)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
