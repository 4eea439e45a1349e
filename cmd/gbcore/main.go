package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mbuck85/gbcore"
	"github.com/mbuck85/gbcore/backend/terminal"
	"github.com/mbuck85/gbcore/video"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Description = "A DMG Game Boy emulator core"
	app.Usage = "gbcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a terminal display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "palette",
			Usage: "Display palette: dmg (default) or grayscale",
			Value: "dmg",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	romBytes, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	sys, err := gbcore.Load(romBytes)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	pal, err := resolvePalette(c.String("palette"))
	if err != nil {
		return err
	}
	sys.SetPalette(pal)

	slog.Info("loaded cartridge", "title", sys.Cartridge.Title(), "rom_banks", sys.Cartridge.NumROMBanks())

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}

		for i := 0; i < frames; i++ {
			sys.RunFrame()
			if i%60 == 0 {
				slog.Info("frame progress", "completed", i, "total", frames)
			}
		}

		slog.Info("headless execution completed", "frames", frames)
		return nil
	}

	return terminal.New(sys).Run()
}

func resolvePalette(name string) (video.Palette, error) {
	switch name {
	case "dmg", "":
		return video.DefaultPalette, nil
	case "grayscale":
		return video.Palette{
			{255, 255, 255},
			{170, 170, 170},
			{85, 85, 85},
			{0, 0, 0},
		}, nil
	default:
		return video.Palette{}, fmt.Errorf("unknown palette %q", name)
	}
}
