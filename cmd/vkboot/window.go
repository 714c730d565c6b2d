// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"time"

	"github.com/devblok/vkboot/core"
	"github.com/veandco/go-sdl2/sdl"
)

// window adapts an SDL window to core.Window.
type window struct {
	*sdl.Window
}

var _ core.Window = (*window)(nil)

func newWindow(cfg core.WindowConfiguration) (*window, error) {
	w, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, err
	}
	return &window{w}, nil
}

// RequiredInstanceExtensions implements interface
func (w *window) RequiredInstanceExtensions() []string {
	return w.VulkanGetInstanceExtensions()
}

// Release implements interface
func (w *window) Release() error {
	return w.Destroy()
}

// pollInterval is how often pending window events are drained.
const pollInterval = time.Second / 60

// runEventLoop blocks until the window is closed or escape is pressed.
func runEventLoop() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for range ticker.C {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch et := event.(type) {
			case *sdl.KeyboardEvent:
				if et.Keysym.Sym == sdl.K_ESCAPE {
					return
				}
			case *sdl.QuitEvent:
				return
			}
		}
	}
}
