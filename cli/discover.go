package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"gopkg.in/urfave/cli.v1"

	"macremote/discovery"
	"macremote/output"
)

func discoverCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "discover",
		Usage: "Search the local network for the control host",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "token", Usage: "Auth token to probe with (defaults to the saved token)"},
			cli.IntFlag{Name: "batch-size", Usage: "Number of addresses probed at once (overrides config)"},
			cli.IntFlag{Name: "timeout-ms", Usage: "Per-address timeout in milliseconds (overrides config)"},
			yesFlag,
		},
		Action: func(ctx *cli.Context) error {
			batchSize := sess.cfg.BatchSize
			if v := ctx.Int("batch-size"); v > 0 {
				batchSize = v
			}
			timeout := sess.cfg.ProbeTimeout()
			if v := ctx.Int("timeout-ms"); v > 0 {
				timeout = time.Duration(v) * time.Millisecond
			}

			controller := discovery.NewController(
				discovery.NewHTTPProber(timeout, sess.logger.Named("probe")),
				discovery.Options{
					BatchSize: batchSize,
					Settings:  sess.settings,
				},
				sess.logger.Named("discovery"),
			)

			// Ctrl-C stops the search after the batch in flight
			interrupts := make(chan os.Signal, 1)
			signal.Notify(interrupts, os.Interrupt)
			done := make(chan struct{})
			defer func() {
				signal.Stop(interrupts)
				close(done)
			}()
			go func() {
				select {
				case <-interrupts:
					warnColor.Fprintln(sess.out, "\nCancelling after the current batch...")
					controller.Cancel()
				case <-done:
				}
			}()

			PrintBanner(sess.out)
			return runDiscovery(sess, controller, discovery.CandidateCount, ctx.String("token"), ctx.Bool("yes"))
		},
	}
}

// runDiscovery runs one search, reports it and, on success, saves the found
// address once the user confirms.
func runDiscovery(sess *session, controller *discovery.Controller, total int, token string, assumeYes bool) error {
	fmt.Fprintln(sess.out, "Scanning network for your Mac...")
	progress := NewProgressPrinter(sess.out)

	started := time.Now()
	result, err := controller.Start(context.Background(), token, progress.Report)
	progress.Done()
	if err != nil {
		return err
	}
	sess.logger.Info("\n%s", output.FormatDiscoverySummary(result, total, started, time.Now()))

	switch result.Status {
	case discovery.StatusFound:
		successColor.Fprintf(sess.out, "Found your Mac at %s!\n", result.Address)
		if !assumeYes && !Confirm(sess.in, sess.out, "Save this address?", true) {
			fmt.Fprintln(sess.out, "Address not saved")
			return nil
		}
		if err := sess.settings.SetAPIURL(result.Address); err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}
		if token != "" {
			if err := sess.settings.SetAuthToken(token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
		}
		successColor.Fprintln(sess.out, "Settings saved successfully!")
	case discovery.StatusCancelled:
		warnColor.Fprintln(sess.out, "Discovery cancelled")
	default:
		errorColor.Fprintln(sess.out, "Could not find your Mac. Please enter the address manually:")
		fmt.Fprintln(sess.out, "  macremote config set --url http://<ip>:8080")
	}
	return nil
}
