// Command metadata prints a formatted metadata report for video files.
// Reports go to stdout, one per video separated by a blank line;
// progress information goes to stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"thirdcoast.systems/storyboard/internal/config"
	"thirdcoast.systems/storyboard/internal/progress"
	"thirdcoast.systems/storyboard/pkg/ffmpeg"
	"thirdcoast.systems/storyboard/pkg/videoinfo"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ffprobeBin := pflag.String("ffprobe-bin", "", "name/path of the ffprobe binary (guessed from OS type when empty)")
	includeSHA1 := pflag.BoolP("include-sha1sum", "s", false, "include the SHA-1 digest of each video")
	excludeSHA1 := pflag.Bool("exclude-sha1sum", false, "exclude the SHA-1 digest, overriding --include-sha1sum and the config file")
	verbose := pflag.StringP("verbose", "v", "", "whether to print progress information to stderr: auto, on, or off")
	pflag.Lookup("verbose").NoOptDefVal = "auto"
	pflag.Parse()

	videos := pflag.Args()
	if len(videos) == 0 {
		fmt.Fprintln(os.Stderr, "usage: metadata [options] VIDEO...")
		pflag.PrintDefaults()
		return 1
	}

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	if *ffprobeBin != "" {
		cfg.FFprobeBin = *ffprobeBin
	}
	if *includeSHA1 {
		cfg.IncludeSHA1 = true
	}
	if *excludeSHA1 {
		cfg.IncludeSHA1 = false
	}
	if *verbose != "" {
		cfg.Verbose = *verbose
	}

	showProgress := progressEnabled(cfg.Verbose, cfg.IncludeSHA1)

	level := slog.LevelWarn
	if showProgress {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	probeBin := cfg.FFprobeBin
	if probeBin == "" {
		_, probeBin = ffmpeg.GuessBinaries()
	}
	if err := ffmpeg.CheckBinaries(ctx, "", probeBin); err != nil {
		log.Error("ffprobe unusable", "error", err)
		return 1
	}

	var onProgress func(done, total int64)
	if showProgress && cfg.IncludeSHA1 {
		onProgress = progress.NewReporter(os.Stderr, "Computing SHA-1 digest").Update
	}

	code := 0
	for _, path := range videos {
		v, err := videoinfo.Probe(ctx, path, videoinfo.Options{
			FFprobeBin: cfg.FFprobeBin,
			Logger:     log,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			code = 1
			continue
		}

		report, err := v.FormatMetadata(videoinfo.ReportOptions{
			IncludeSHA1: cfg.IncludeSHA1,
			Progress:    onProgress,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			code = 1
			continue
		}

		fmt.Println(report)
		fmt.Println()
	}
	return code
}

// progressEnabled resolves the verbose mode: on and off are literal.
// In auto mode progress only shows when there is slow work to report
// (the digest) and stderr is a terminal. Unrecognized values warn and
// behave like auto.
func progressEnabled(mode string, includeSHA1 bool) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	case "auto", "":
	default:
		fmt.Fprintf(os.Stderr, "warning: %q is not a valid argument to --verbose; using auto instead\n", mode)
	}
	return includeSHA1 && term.IsTerminal(int(os.Stderr.Fd()))
}
