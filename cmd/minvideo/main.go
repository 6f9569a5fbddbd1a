package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/AlexEidt/minvideo"
)

type command struct {
	alias       string
	usage       string
	description string
	minimumArgs int
	run         func(ctx context.Context, cfg *Config, args []string, out io.Writer) error
}

func commands() []command {
	return []command{
		{"help", "", "Shows this message", 0, nil},
		{"info", "<path>", "Shows info of a video saved in the MinVideo format", 1, runInfo},
		{"convert", "<input> <output> [width] [height]", "Converts a standard video to the MinVideo format, use -1 -1 to keep the original size", 2, runConvert},
		{"export", "<input> <output>", "Encodes a MinVideo file to a standard video with ffmpeg", 2, runExport},
		{"frame", "<input> <index> <output>", "Writes one frame as a png or jpeg image", 3, runFrame},
	}
}

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() { printHelp(flag.CommandLine.Output()) }
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Args(), os.Stdout); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "help" {
		printHelp(out)
		return nil
	}

	alias, rest := args[0], args[1:]
	for _, cmd := range commands() {
		if cmd.alias != alias || cmd.run == nil {
			continue
		}
		if len(rest) < cmd.minimumArgs {
			return fmt.Errorf("%s requires at least %d arguments: %s %s", alias, cmd.minimumArgs, alias, cmd.usage)
		}
		return cmd.run(ctx, cfg, rest, out)
	}
	return fmt.Errorf("unrecognized option: %s", alias)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "MinVideo command line tool")
	fmt.Fprintln(out, "\nUsage: minvideo [-config path] [-debug] <option> [args]")

	width := 0
	for _, cmd := range commands() {
		width = max(width, len(cmd.alias)+len(cmd.usage))
	}

	fmt.Fprintln(out, "\nAvailable options:")
	for _, cmd := range commands() {
		pad := strings.Repeat(" ", width-len(cmd.alias)-len(cmd.usage))
		fmt.Fprintf(out, "  %s %s%s: %s\n", cmd.alias, cmd.usage, pad, cmd.description)
	}
	fmt.Fprintln(out)
}

// Reports the size and frame count from the header and file length.
func runInfo(_ context.Context, _ *Config, args []string, out io.Writer) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	width, err := minvideo.WidthFromData(data)
	if err != nil {
		return err
	}
	height, err := minvideo.HeightFromData(data)
	if err != nil {
		return err
	}
	frames, err := minvideo.FrameCountFromData(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Size: %dx%d\n", width, height)
	fmt.Fprintf(out, "Frames: %d\n", frames)
	return nil
}

func runConvert(ctx context.Context, cfg *Config, args []string, _ io.Writer) error {
	input, output := args[0], args[1]
	width, height := cfg.Convert.Width, cfg.Convert.Height

	var err error
	if len(args) >= 3 {
		if width, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("invalid width %q: %w", args[2], err)
		}
	}
	if len(args) >= 4 {
		if height, err = strconv.Atoi(args[3]); err != nil {
			return fmt.Errorf("invalid height %q: %w", args[3], err)
		}
	}

	options := &minvideo.ImportOptions{}
	if width > 0 {
		options.Width = width
	}
	if height > 0 {
		options.Height = height
	}

	slog.Info("converting video", "input", input, "output", output, "width", width, "height", height)
	video, err := minvideo.Import(ctx, input, options)
	if err != nil {
		return err
	}
	if err := minvideo.Save(output, video); err != nil {
		return err
	}
	slog.Info("done", "frames", video.FrameCount(), "size", fmt.Sprintf("%dx%d", video.Width(), video.Height()))
	return nil
}

func runExport(ctx context.Context, cfg *Config, args []string, _ io.Writer) error {
	input, output := args[0], args[1]
	video, err := minvideo.Load(input)
	if err != nil {
		return err
	}

	slog.Info("exporting video", "input", input, "output", output, "frames", video.FrameCount())
	return minvideo.Export(ctx, output, video, &minvideo.ExportOptions{
		FPS:     cfg.Export.FPS,
		Codec:   cfg.Export.Codec,
		Bitrate: cfg.Export.Bitrate,
	})
}

func runFrame(_ context.Context, _ *Config, args []string, _ io.Writer) error {
	input, output := args[0], args[2]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid frame index %q: %w", args[1], err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	errFound := errors.New("found")
	err = minvideo.ForEachFrame(data, func(n int, frame *minvideo.Frame) error {
		if n != index {
			return nil
		}
		if err := minvideo.WriteImage(output, frame); err != nil {
			return err
		}
		return errFound
	})
	if errors.Is(err, errFound) {
		slog.Info("wrote frame", "index", index, "output", output)
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("frame %d not in video: %w", index, minvideo.ErrOutOfRange)
}
