package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trufnetwork/notary/notary/config"
	"github.com/trufnetwork/notary/notary/validation"
	"github.com/trufnetwork/notary/notary/watch"
)

const scheduleFlag = "schedule"

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-anchor a document on a cron schedule whenever it changes",
		Long: "Anchors the document once, then checks it on the cron schedule (watch_schedule, " +
			"NOTARY_WATCH_SCHEDULE or --schedule) and anchors it again only when its fingerprint " +
			"changed. Runs until interrupted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			rules := validation.DefaultRules()
			rules.AddRule(&validation.CronScheduleRule{})
			cfg, err := config.NewLoaderWithValidation(log, rules).Load(configPath(cmd))
			if err != nil {
				return err
			}
			schedule := cfg.WatchSchedule
			if cmd.Flags().Changed(scheduleFlag) {
				schedule, _ = cmd.Flags().GetString(scheduleFlag)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close()

			n, err := rt.notarizer()
			if err != nil {
				return err
			}

			w := watch.NewWatcher(watch.NewWatcherParams{
				Path:       args[0],
				Anchorer:   n,
				Logger:     log,
				JobTimeout: cfg.RPCTimeout * 4,
			})

			out, err := w.RunOnce(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Result.String())

			if err := w.Start(ctx, schedule); err != nil {
				return err
			}
			defer w.Stop()

			<-ctx.Done()
			log.Info("watch interrupted", zap.String("path", args[0]))
			return nil
		},
	}
	cmd.Flags().String(scheduleFlag, "", "5-field cron expression overriding watch_schedule")
	return cmd
}
