// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command vkinfo prints the physical devices the Vulkan loader reports,
// together with the device vkboot would select, as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

type report struct {
	Devices  []core.PhysicalDeviceDescriptor `json:"devices"`
	Selected *selection                      `json:"selected,omitempty"`
	Error    string                          `json:"error,omitempty"`
}

type selection struct {
	Ordinal     int `json:"ordinal"`
	QueueFamily int `json:"queueFamily"`
}

func main() {
	debug := flag.Bool("debug", false, "enable the validation layer")
	flag.Parse()
	log.SetLevel(log.WarnLevel)

	if err := run(*debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(debug bool) error {
	driver, err := device.NewVulkan(nil)
	if err != nil {
		return err
	}

	cfg := core.DefaultConfiguration.Instance
	cfg.ApplicationName = "vkinfo"
	cfg.DebugMode = debug

	ctx := core.NewContext(driver)
	defer ctx.Destroy()

	if err := ctx.CreateInstance(cfg, nil); err != nil {
		return err
	}

	devices, err := ctx.EnumerateDevices()
	if err != nil {
		return err
	}

	r := report{Devices: devices}
	if selected, err := core.SelectDevice(devices); err != nil {
		r.Error = err.Error()
	} else if family, err := core.SelectGraphicsQueueFamily(core.EnumerateQueueFamilies(selected)); err != nil {
		r.Error = err.Error()
	} else {
		r.Selected = &selection{Ordinal: selected.Ordinal, QueueFamily: family}
	}

	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", bytes)
	return nil
}
