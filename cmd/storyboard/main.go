// Command storyboard generates storyboard images for video files. Each
// storyboard is written to the output directory (or a temporary
// directory) and its path is printed to stdout, one per line, so the
// command composes well in scripts. Progress and errors go to stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"thirdcoast.systems/storyboard/internal/config"
	"thirdcoast.systems/storyboard/internal/progress"
	"thirdcoast.systems/storyboard/pkg/board"
	"thirdcoast.systems/storyboard/pkg/ffmpeg"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ffmpegBin := pflag.String("ffmpeg-bin", "", "name/path of the ffmpeg binary (guessed from OS type when empty)")
	ffprobeBin := pflag.String("ffprobe-bin", "", "name/path of the ffprobe binary (guessed from OS type when empty)")
	outputFormat := pflag.StringP("output-format", "f", "", "output image format, jpeg or png")
	quality := pflag.Int("quality", 0, "JPEG quality, 1 to 100")
	outputDir := pflag.StringP("output-dir", "o", "", "directory to write storyboards to (temporary directory when empty)")
	videoDuration := pflag.Float64("video-duration", 0, "override the video duration in seconds, for files with broken container metadata")
	excludeSHA1 := pflag.BoolP("exclude-sha1sum", "s", false, "exclude the SHA-1 digest of the video(s) from the metadata sheet")
	includeSHA1 := pflag.Bool("include-sha1sum", false, "include the SHA-1 digest, overriding --exclude-sha1sum")
	verbose := pflag.StringP("verbose", "v", "", "whether to print progress information to stderr: auto, on, or off")
	pflag.Lookup("verbose").NoOptDefVal = "auto"
	pflag.Parse()

	videos := pflag.Args()
	if len(videos) == 0 {
		fmt.Fprintln(os.Stderr, "usage: storyboard [options] VIDEO...")
		pflag.PrintDefaults()
		return 1
	}

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	applyFlags(cfg, *ffmpegBin, *ffprobeBin, *outputFormat, *quality, *outputDir, *verbose)

	cfg.IncludeSHA1 = includeDigest(*excludeSHA1, *includeSHA1)

	showProgress := progressEnabled(cfg.Verbose)

	level := slog.LevelWarn
	if showProgress {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := ffmpeg.CheckBinaries(ctx, binOrDefaultFFmpeg(cfg.FFmpegBin), binOrDefaultFFprobe(cfg.FFprobeBin)); err != nil {
		log.Error("ffmpeg tools unusable", "error", err)
		return 1
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir, err = os.MkdirTemp("", "storyboard-")
		if err != nil {
			log.Error("failed to create output directory", "error", err)
			return 1
		}
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("failed to create output directory", "dir", dir, "error", err)
		return 1
	}

	var durationOverride *float64
	if pflag.CommandLine.Changed("video-duration") {
		durationOverride = videoDuration
	}

	code := 0
	for _, video := range videos {
		path, err := generateOne(ctx, video, dir, cfg, durationOverride, showProgress, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", video, err)
			code = 1
			continue
		}
		fmt.Println(path)
	}
	return code
}

func generateOne(ctx context.Context, video, dir string, cfg *config.Config, durationOverride *float64, showProgress bool, log *slog.Logger) (string, error) {
	log.Info("processing video", "path", video)

	sb, err := board.New(ctx, video, board.Options{
		FFmpegBin:        cfg.FFmpegBin,
		FFprobeBin:       cfg.FFprobeBin,
		DurationOverride: durationOverride,
		Logger:           log,
	})
	if err != nil {
		return "", err
	}

	var onProgress func(done, total int64)
	if showProgress && cfg.IncludeSHA1 {
		onProgress = progress.NewReporter(os.Stderr, "Computing SHA-1 digest").Update
	}

	img, err := sb.Generate(ctx, board.GenerateOptions{
		IncludeSHA1: cfg.IncludeSHA1,
		Progress:    onProgress,
	})
	if err != nil {
		return "", err
	}

	ext := "jpg"
	if cfg.OutputFormat == "png" {
		ext = "png"
	}
	out := filepath.Join(dir, fmt.Sprintf("storyboard-%s.%s", uuid.NewString(), ext))
	if err := imaging.Save(img, out, imaging.JPEGQuality(cfg.Quality)); err != nil {
		return "", err
	}
	log.Info("storyboard written", "path", out)
	return out, nil
}

// includeDigest decides whether the metadata sheet carries the SHA-1
// digest. The digest is part of the sheet unless explicitly excluded,
// and --include-sha1sum wins over --exclude-sha1sum.
func includeDigest(exclude, include bool) bool {
	if include {
		return true
	}
	return !exclude
}

// progressEnabled resolves the verbose mode: on and off are literal,
// auto follows whether stderr is a terminal. Unrecognized values warn
// and behave like auto.
func progressEnabled(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	case "auto", "":
	default:
		fmt.Fprintf(os.Stderr, "warning: %q is not a valid argument to --verbose; using auto instead\n", mode)
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// applyFlags lets command line flags override config file and
// environment values.
func applyFlags(cfg *config.Config, ffmpegBin, ffprobeBin, outputFormat string, quality int, outputDir, verbose string) {
	if ffmpegBin != "" {
		cfg.FFmpegBin = ffmpegBin
	}
	if ffprobeBin != "" {
		cfg.FFprobeBin = ffprobeBin
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	if quality != 0 {
		cfg.Quality = quality
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if verbose != "" {
		cfg.Verbose = verbose
	}
}

func binOrDefaultFFmpeg(bin string) string {
	if bin != "" {
		return bin
	}
	b, _ := ffmpeg.GuessBinaries()
	return b
}

func binOrDefaultFFprobe(bin string) string {
	if bin != "" {
		return bin
	}
	_, b := ffmpeg.GuessBinaries()
	return b
}
