// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkboot/core"
)

func TestLoadConfiguration(t *testing.T) {
	c := qt.New(t)

	c.Run("defaults", func(c *qt.C) {
		var (
			cfg core.Configuration
			err error
		)
		envy.Temp(func() {
			for _, key := range []string{
				core.EnvApplicationName, core.EnvApplicationVersion, core.EnvEngineName,
				core.EnvEngineVersion, core.EnvAPIVersion, core.EnvExtensions, core.EnvLayers,
				core.EnvDebug, core.EnvWindowTitle, core.EnvWindowWidth, core.EnvWindowHeight,
				core.EnvLogLevel,
			} {
				envy.Set(key, "")
			}
			cfg, err = core.LoadConfiguration(nil)
		})
		c.Assert(err, qt.IsNil)
		c.Check(cfg.Instance.ApplicationName, qt.Equals, "Graphics Engine")
		c.Check(cfg.Instance.APIVersion, qt.Equals, core.Version{Major: 1, Minor: 3})
		c.Check(cfg.Instance.DebugMode, qt.Equals, false)
		c.Check(cfg.Window, qt.Equals, core.WindowConfiguration{Title: "Vulkan Graphics Engine", Width: 800, Height: 600})
		c.Check(cfg.LogLevel, qt.Equals, logrus.InfoLevel)
	})

	c.Run("environment over defaults", func(c *qt.C) {
		var (
			cfg core.Configuration
			err error
		)
		envy.Temp(func() {
			envy.Set(core.EnvApplicationName, "Triangle")
			envy.Set(core.EnvAPIVersion, "1.1")
			envy.Set(core.EnvLayers, "VK_LAYER_LUNARG_monitor, ")
			envy.Set(core.EnvDebug, "true")
			envy.Set(core.EnvWindowWidth, "1280")
			envy.Set(core.EnvLogLevel, "")
			cfg, err = core.LoadConfiguration(map[string]string{
				core.EnvApplicationName: "Ignored",
				core.EnvEngineName:      "Box Engine",
				core.EnvLogLevel:        "debug",
			})
		})
		c.Assert(err, qt.IsNil)
		c.Check(cfg.Instance.ApplicationName, qt.Equals, "Triangle")
		c.Check(cfg.Instance.EngineName, qt.Equals, "Box Engine")
		c.Check(cfg.Instance.APIVersion, qt.Equals, core.Version{Major: 1, Minor: 1})
		c.Check(cfg.Instance.Layers, qt.DeepEquals, []string{"VK_LAYER_LUNARG_monitor"})
		c.Check(cfg.Instance.DebugMode, qt.Equals, true)
		c.Check(cfg.Window.Width, qt.Equals, uint32(1280))
		c.Check(cfg.LogLevel, qt.Equals, logrus.DebugLevel)
	})

	c.Run("malformed", func(c *qt.C) {
		var err error
		envy.Temp(func() {
			envy.Set(core.EnvWindowHeight, "0")
			_, err = core.LoadConfiguration(nil)
		})
		c.Assert(err, qt.ErrorMatches, "VKBOOT_WINDOW_HEIGHT: .*")
	})
}

func TestParseVersion(t *testing.T) {
	c := qt.New(t)

	cases := map[string]core.Version{
		"1":       {Major: 1},
		"1.3":     {Major: 1, Minor: 3},
		"1.2.189": {Major: 1, Minor: 2, Patch: 189},
	}
	for in, want := range cases {
		got, err := core.ParseVersion(in)
		c.Assert(err, qt.IsNil)
		c.Check(got, qt.Equals, want)
		c.Check(got.String(), qt.Equals, want.String())
	}

	for _, in := range []string{"", "1.x", "1.2.3.4", "-1"} {
		_, err := core.ParseVersion(in)
		c.Check(err, qt.Not(qt.IsNil), qt.Commentf("input %q", in))
	}
}

func TestInstanceInfo(t *testing.T) {
	c := qt.New(t)

	cfg := core.InstanceConfiguration{
		ApplicationName: "Graphics Engine",
		Extensions:      []string{"VK_KHR_surface", "VK_EXT_debug_utils"},
		Layers:          []string{core.ValidationLayer},
	}
	info := cfg.InstanceInfo([]string{"VK_KHR_surface", "VK_KHR_win32_surface"})
	c.Check(info.Extensions, qt.DeepEquals, []string{"VK_KHR_surface", "VK_KHR_win32_surface", "VK_EXT_debug_utils"})
	c.Check(info.Layers, qt.DeepEquals, []string{core.ValidationLayer})

	cfg.Layers = nil
	c.Check(cfg.InstanceInfo(nil).Layers, qt.HasLen, 0)

	cfg.DebugMode = true
	c.Check(cfg.InstanceInfo(nil).Layers, qt.DeepEquals, []string{core.ValidationLayer})
}
