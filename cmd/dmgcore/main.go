// Command dmgcore runs a Game Boy ROM headlessly for a number of
// frames, and writes out whatever the machine produced.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	var logger = log.New()

	romFile := flag.String("rom", "", "The rom file to load (.gb, .zip, .gz or .7z)")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	frames := flag.Int("frames", 60, "The number of frames to run")
	serial := flag.Bool("serial", false, "Echo serial output to stdout")
	screenshot := flag.String("screenshot", "", "Save the last frame to this file (.png or .bmp)")
	scale := flag.Int("scale", 1, "The scale factor of the screenshot")
	paletteName := flag.String("palette", "greyscale", "The palette to use")
	saveFile := flag.String("save", "", "The battery save file, loaded at start and written on exit")
	stateIn := flag.String("state-in", "", "The state file to load")
	stateOut := flag.String("state-out", "", "Save the state to this file on exit")
	plotFile := flag.String("plot", "", "Plot the time taken by each frame to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger.SetDebug(*debug)

	if err := run(logger, config{
		rom:        *romFile,
		boot:       *bootROM,
		frames:     *frames,
		serial:     *serial,
		screenshot: *screenshot,
		scale:      *scale,
		palette:    *paletteName,
		save:       *saveFile,
		stateIn:    *stateIn,
		stateOut:   *stateOut,
		plot:       *plotFile,
	}); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

type config struct {
	rom, boot         string
	frames            int
	serial            bool
	screenshot        string
	scale             int
	palette           string
	save              string
	stateIn, stateOut string
	plot              string
}

func run(logger log.Logger, cfg config) error {
	if cfg.rom == "" {
		return fmt.Errorf("no rom given, see -help")
	}
	rom, err := utils.LoadFile(cfg.rom)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	p, err := palette.ByName(cfg.palette)
	if err != nil {
		return err
	}
	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithPalette(p),
	}
	if cfg.boot != "" {
		boot, err := utils.LoadFile(cfg.boot)
		if err != nil {
			return fmt.Errorf("loading boot rom: %w", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if cfg.serial {
		opts = append(opts, gameboy.WithSerialOutput(os.Stdout))
	}
	if cfg.stateIn != "" {
		state, err := types.LoadStateFromFile(cfg.stateIn)
		if err != nil {
			return fmt.Errorf("loading state: %w", err)
		}
		opts = append(opts, gameboy.WithState(state.Bytes()))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}

	if cfg.save != "" && gb.HasBattery() {
		ram, err := utils.LoadSave(cfg.save)
		if err != nil {
			return fmt.Errorf("loading save: %w", err)
		}
		if ram != nil {
			if err := gb.LoadExternalRAM(ram); err != nil {
				return err
			}
			logger.Infof("loaded %d bytes of save data from %s", len(ram), cfg.save)
		}
	}

	times := make([]time.Duration, 0, cfg.frames)
	for i := 0; i < cfg.frames; i++ {
		start := time.Now()
		gb.Frame()
		times = append(times, time.Since(start))

		if err := gb.Err(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	logger.Debugf("ran %d frames in %s", len(times), total(times))

	if cfg.screenshot != "" {
		img := utils.Scale(utils.FrameToImage(&gb.PPU.PreparedFrame), cfg.scale)
		if err := utils.SaveImage(cfg.screenshot, img); err != nil {
			return fmt.Errorf("saving screenshot: %w", err)
		}
	}
	if cfg.save != "" && gb.HasBattery() {
		if err := utils.WriteSave(cfg.save, gb.ExternalRAM()); err != nil {
			return fmt.Errorf("writing save: %w", err)
		}
	}
	if cfg.stateOut != "" {
		if err := gb.Save().SaveToFile(cfg.stateOut); err != nil {
			return fmt.Errorf("writing state: %w", err)
		}
	}
	if cfg.plot != "" && len(times) > 0 {
		if err := plotFrameTimes(cfg.plot, filepath.Base(cfg.rom), times); err != nil {
			return fmt.Errorf("plotting frame times: %w", err)
		}
	}

	fmt.Printf("%016x\n", gb.FrameHash())
	return nil
}

func total(times []time.Duration) time.Duration {
	var d time.Duration
	for _, t := range times {
		d += t
	}
	return d
}
