package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"macremote/output"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

func statusCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "status",
		Usage: "Show memory, storage, battery and running apps",
		Flags: []cli.Flag{
			cli.BoolFlag{Name: "html", Usage: "Read the HTML status page instead of the JSON document"},
		},
		Action: func(ctx *cli.Context) error {
			reqCtx, cancel := sess.requestContext()
			defer cancel()

			client := sess.client()
			fetch := client.Status
			if ctx.Bool("html") {
				fetch = client.StatusPage
			}
			status, err := fetch(reqCtx)
			if err != nil {
				return err
			}
			fmt.Fprint(sess.out, output.FormatStatus(status))
			return nil
		},
	}
}

func camerasCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "cameras",
		Usage: "List cameras available on the control host",
		Action: func(ctx *cli.Context) error {
			reqCtx, cancel := sess.requestContext()
			defer cancel()

			cameras, err := sess.client().ListCameras(reqCtx)
			if err != nil {
				return err
			}
			fmt.Fprint(sess.out, output.FormatCameras(cameras))
			return nil
		},
	}
}

func cameraCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "camera",
		Usage: "Capture a photo and save it to the output directory",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "camera", Value: 0, Usage: "Camera ID"},
			cli.StringFlag{Name: "output", Usage: "Override output directory"},
		},
		Action: func(ctx *cli.Context) error {
			outputDir := sess.cfg.OutputDir
			if v := ctx.String("output"); v != "" {
				outputDir = v
			}
			writer, err := output.NewWriter(outputDir, sess.logger.Named("output"))
			if err != nil {
				return err
			}

			reqCtx, cancel := sess.requestContext()
			defer cancel()

			photo, err := sess.client().CapturePhoto(reqCtx, ctx.Int("camera"))
			if err != nil {
				return err
			}
			path, err := writer.SavePhoto(photo)
			if err != nil {
				return err
			}
			successColor.Fprintf(sess.out, "Photo saved to %s\n", path)
			return nil
		},
	}
}

func lockCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "lock",
		Usage: "Lock the screen",
		Action: func(ctx *cli.Context) error {
			reqCtx, cancel := sess.requestContext()
			defer cancel()

			result, err := sess.client().Lock(reqCtx)
			if err != nil {
				return err
			}
			successColor.Fprintf(sess.out, "Screen lock requested: %s\n", result.Result)
			return nil
		},
	}
}

func restartCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "restart",
		Usage: "Restart the control host",
		Flags: []cli.Flag{yesFlag},
		Action: func(ctx *cli.Context) error {
			if !ctx.Bool("yes") && !Confirm(sess.in, sess.out, "Are you sure you want to restart the Mac?", false) {
				fmt.Fprintln(sess.out, "Restart aborted")
				return nil
			}

			reqCtx, cancel := sess.requestContext()
			defer cancel()

			result, err := sess.client().Restart(reqCtx)
			if err != nil {
				return err
			}
			successColor.Fprintf(sess.out, "Restart requested: %s\n", result.Result)
			return nil
		},
	}
}

func testCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "test",
		Usage: "Check the saved URL and token against the control host",
		Action: func(ctx *cli.Context) error {
			reqCtx, cancel := sess.requestContext()
			defer cancel()

			if err := sess.client().TestConnection(reqCtx); err != nil {
				errorColor.Fprintf(sess.out, "Connection failed: %v\n", err)
				return err
			}
			successColor.Fprintln(sess.out, "Connection successful!")
			return nil
		},
	}
}

func configCommand(sess *session) cli.Command {
	return cli.Command{
		Name:  "config",
		Usage: "Show, set or clear the saved connection settings",
		Subcommands: []cli.Command{
			{
				Name:  "show",
				Usage: "Print the saved settings",
				Action: func(ctx *cli.Context) error {
					apiURL, err := sess.settings.APIURL()
					if err != nil {
						return err
					}
					token, err := sess.settings.AuthToken()
					if err != nil {
						return err
					}
					fmt.Fprintf(sess.out, "API URL:    %s\n", orNotSet(apiURL))
					fmt.Fprintf(sess.out, "Auth token: %s\n", orNotSet(maskToken(token)))
					return nil
				},
			},
			{
				Name:  "set",
				Usage: "Save the API URL and/or auth token",
				Flags: []cli.Flag{
					cli.StringFlag{Name: "url", Usage: "Base URL, e.g. http://192.168.1.100:8080"},
					cli.StringFlag{Name: "token", Usage: "Authentication token"},
				},
				Action: func(ctx *cli.Context) error {
					apiURL, token := ctx.String("url"), ctx.String("token")
					if apiURL == "" && token == "" {
						return errors.New("nothing to set, pass --url and/or --token")
					}
					if apiURL != "" {
						if err := sess.settings.SetAPIURL(apiURL); err != nil {
							return err
						}
					}
					if token != "" {
						if err := sess.settings.SetAuthToken(token); err != nil {
							return err
						}
					}
					successColor.Fprintln(sess.out, "Settings saved successfully!")
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Remove the saved settings",
				Flags: []cli.Flag{yesFlag},
				Action: func(ctx *cli.Context) error {
					if !ctx.Bool("yes") && !Confirm(sess.in, sess.out, "Clear all settings? You will need to reconfigure the connection.", false) {
						return nil
					}
					if err := sess.settings.ClearAll(); err != nil {
						return err
					}
					successColor.Fprintln(sess.out, "Settings cleared")
					return nil
				},
			},
		},
	}
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 3 {
		return "***"
	}
	return token[:3] + "***"
}
