package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/emotion-sdk/internal/app"
	"github.com/samvad-hq/emotion-sdk/internal/batch"
	"github.com/samvad-hq/emotion-sdk/internal/config"
	"github.com/samvad-hq/emotion-sdk/internal/credentials"
	"github.com/samvad-hq/emotion-sdk/internal/logger"
)

const usage = `usage:
  emotion recognize [--publish] <url-or-file>...
  emotion key show
  emotion key save --key <subscription-key> [--endpoint <api-root>]
  emotion key delete
  emotion key signup
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "emotion: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "recognize":
		return recognize(ctx, cfg, log, args[1:], out)
	case "key":
		return key(cfg, log, args[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func recognize(ctx context.Context, cfg *config.Config, log logger.Logger, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("recognize", pflag.ContinueOnError)
	publish := fs.Bool("publish", false, "publish results to the sinks in publishers_file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: recognize needs at least one url or file", errUsage)
	}

	rec, err := app.NewRecognizer(ctx, cfg, log, *publish)
	if err != nil {
		logger.ErrorObj("failed to initialize recognizer", "error", err.Error())
		return err
	}
	defer rec.Close()

	results, runErr := rec.Run(ctx, fs.Args())
	if err := printResults(out, results); err != nil {
		return err
	}
	return runErr
}

type resultView struct {
	Source   string `json:"source"`
	SourceID string `json:"source_id,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
	Dominant string `json:"dominant_emotion,omitempty"`
	Faces    any    `json:"faces,omitempty"`
	Error    string `json:"error,omitempty"`
}

func printResults(out io.Writer, results []batch.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	for _, r := range results {
		v := resultView{Source: r.Source.String(), SourceID: r.SourceID, Cached: r.Cached}
		if len(r.Faces) > 0 {
			v.Faces = r.Faces
			if e, ok := r.Faces[0].Emotion(); ok {
				v.Dominant = e.Dominant().Label
			}
		}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}

func key(cfg *config.Config, log logger.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: key needs a sub-command", errUsage)
	}
	if args[0] == "signup" {
		_, err := fmt.Fprintln(out, credentials.SignUpURL)
		return err
	}

	mgr, err := app.OpenCredentials(cfg, log)
	if err != nil {
		return err
	}
	defer mgr.Close()

	switch args[0] {
	case "show":
		_, err := fmt.Fprintf(out, "key:      %s\nendpoint: %s\n", mgr.SubscriptionKey(), mgr.Endpoint())
		return err
	case "save":
		return saveKey(mgr, args[1:])
	case "delete":
		return mgr.Delete()
	default:
		return fmt.Errorf("%w: unknown key command %q", errUsage, args[0])
	}
}

// saveKey updates only the fields whose flags were given, then persists both.
func saveKey(mgr *credentials.Manager, args []string) error {
	fs := pflag.NewFlagSet("key save", pflag.ContinueOnError)
	k := fs.String("key", "", "subscription key")
	endpoint := fs.String("endpoint", "", "API root, e.g. https://westus.api.cognitive.microsoft.com/face/v1.0")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if !fs.Changed("key") && !fs.Changed("endpoint") {
		return fmt.Errorf("%w: key save needs --key or --endpoint", errUsage)
	}

	newKey, newEndpoint := mgr.SubscriptionKey(), mgr.Endpoint()
	if fs.Changed("key") {
		newKey = *k
	}
	if fs.Changed("endpoint") {
		newEndpoint = *endpoint
	}
	mgr.SetCredentials(newKey, newEndpoint)
	return mgr.Save()
}
