// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

var resources = packr.NewBox("./resources")

func main() {
	var f flags
	flag.StringVar(&f.envFile, "env", "", "load configuration overrides from this env file")
	flag.BoolVar(&f.debug, "debug", false, "enable the validation layer")
	flag.StringVar(&f.logLevel, "loglevel", "", "log level, overrides VKBOOT_LOG_LEVEL")
	flag.Parse()

	cfg, err := loadConfiguration(resources, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(2)
	}
	log.SetLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		if stage, ok := core.StageOf(err); ok {
			fmt.Fprintf(os.Stderr, "startup failed at %s: %v\n", stage, err)
		} else {
			fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cfg core.Configuration) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return err
	}
	defer sdl.VulkanUnloadLibrary()

	driver, err := device.NewVulkan(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return err
	}

	win, err := newWindow(cfg.Window)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"title":  cfg.Window.Title,
		"width":  cfg.Window.Width,
		"height": cfg.Window.Height,
	}).Info("Window created")

	ctx := core.NewContext(driver)
	defer ctx.Destroy()

	dev, err := core.Bootstrap(ctx, cfg.Instance, win)
	if ctx.State() == core.StateUninitialized {
		// The context never took the window over.
		if err := win.Release(); err != nil {
			log.WithError(err).Error("Window destroyed with an error")
		}
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"device": dev.Physical.Name,
		"kind":   dev.Physical.Kind,
		"family": dev.Queue.Family(),
	}).Info("Bootstrap complete, close the window or press escape to exit")

	runEventLoop()
	return nil
}
