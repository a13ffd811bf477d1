package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vermeil-labs/vermeil/cmd/vermeil/inspect"
	"k8s.io/klog/v2"
)

var cmd = cobra.Command{
	Use:   "vermeil",
	Short: "vermeil token ledger processor",
}

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		&inspect.Cmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}
