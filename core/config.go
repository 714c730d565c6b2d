// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
)

// ValidationLayer is enabled in debug mode.
const ValidationLayer = "VK_LAYER_KHRONOS_validation"

// Configuration defines the bootstrap configuration
type Configuration struct {
	Instance InstanceConfiguration
	Window   WindowConfiguration
	LogLevel logrus.Level
}

// InstanceConfiguration is used to configure the instance
type InstanceConfiguration struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	APIVersion         Version

	// Extensions are requested on top of the ones the window requires.
	Extensions []string
	Layers     []string

	// DebugMode enables the validation layer
	DebugMode bool
}

// WindowConfiguration is used by the windowing layer
type WindowConfiguration struct {
	Title  string
	Width  uint32
	Height uint32
}

// Environment variables read by LoadConfiguration.
const (
	EnvApplicationName    = "VKBOOT_APP_NAME"
	EnvApplicationVersion = "VKBOOT_APP_VERSION"
	EnvEngineName         = "VKBOOT_ENGINE_NAME"
	EnvEngineVersion      = "VKBOOT_ENGINE_VERSION"
	EnvAPIVersion         = "VKBOOT_API_VERSION"
	EnvExtensions         = "VKBOOT_EXTENSIONS"
	EnvLayers             = "VKBOOT_LAYERS"
	EnvDebug              = "VKBOOT_DEBUG"
	EnvWindowTitle        = "VKBOOT_WINDOW_TITLE"
	EnvWindowWidth        = "VKBOOT_WINDOW_WIDTH"
	EnvWindowHeight       = "VKBOOT_WINDOW_HEIGHT"
	EnvLogLevel           = "VKBOOT_LOG_LEVEL"
)

// DefaultConfiguration mirrors the graphics engine template.
var DefaultConfiguration = Configuration{
	Instance: InstanceConfiguration{
		ApplicationName:    "Graphics Engine",
		ApplicationVersion: Version{1, 0, 0},
		EngineName:         "Custom Engine",
		EngineVersion:      Version{1, 0, 0},
		APIVersion:         Version{1, 3, 0},
	},
	Window: WindowConfiguration{
		Title:  "Vulkan Graphics Engine",
		Width:  800,
		Height: 600,
	},
	LogLevel: logrus.InfoLevel,
}

// LoadConfiguration builds a Configuration from the environment. Values
// missing or empty in the environment are taken from defaults, then from
// DefaultConfiguration.
func LoadConfiguration(defaults map[string]string) (Configuration, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(envy.Get(key, "")); v != "" {
			return v
		}
		if v := strings.TrimSpace(defaults[key]); v != "" {
			return v
		}
		return fallback
	}

	dc := DefaultConfiguration
	cfg := Configuration{
		Instance: InstanceConfiguration{
			ApplicationName: get(EnvApplicationName, dc.Instance.ApplicationName),
			EngineName:      get(EnvEngineName, dc.Instance.EngineName),
			Extensions:      splitList(get(EnvExtensions, "")),
			Layers:          splitList(get(EnvLayers, "")),
		},
		Window: WindowConfiguration{
			Title: get(EnvWindowTitle, dc.Window.Title),
		},
	}

	var err error
	if cfg.Instance.ApplicationVersion, err = ParseVersion(get(EnvApplicationVersion, dc.Instance.ApplicationVersion.String())); err != nil {
		return Configuration{}, errors.Wrap(err, EnvApplicationVersion)
	}
	if cfg.Instance.EngineVersion, err = ParseVersion(get(EnvEngineVersion, dc.Instance.EngineVersion.String())); err != nil {
		return Configuration{}, errors.Wrap(err, EnvEngineVersion)
	}
	if cfg.Instance.APIVersion, err = ParseVersion(get(EnvAPIVersion, dc.Instance.APIVersion.String())); err != nil {
		return Configuration{}, errors.Wrap(err, EnvAPIVersion)
	}
	if cfg.Instance.DebugMode, err = strconv.ParseBool(get(EnvDebug, "false")); err != nil {
		return Configuration{}, errors.Wrap(err, EnvDebug)
	}
	if cfg.Window.Width, err = parseDimension(get(EnvWindowWidth, strconv.Itoa(int(dc.Window.Width)))); err != nil {
		return Configuration{}, errors.Wrap(err, EnvWindowWidth)
	}
	if cfg.Window.Height, err = parseDimension(get(EnvWindowHeight, strconv.Itoa(int(dc.Window.Height)))); err != nil {
		return Configuration{}, errors.Wrap(err, EnvWindowHeight)
	}
	if cfg.LogLevel, err = logrus.ParseLevel(get(EnvLogLevel, dc.LogLevel.String())); err != nil {
		return Configuration{}, errors.Wrap(err, EnvLogLevel)
	}
	return cfg, nil
}

// InstanceInfo turns the configuration into a Driver request. Window
// extensions come first, configured extensions and layers follow, duplicates
// are dropped.
func (c InstanceConfiguration) InstanceInfo(windowExtensions []string) InstanceInfo {
	layers := c.Layers
	if c.DebugMode {
		layers = append(append([]string{}, layers...), ValidationLayer)
	}
	return InstanceInfo{
		ApplicationName:    c.ApplicationName,
		ApplicationVersion: c.ApplicationVersion,
		EngineName:         c.EngineName,
		EngineVersion:      c.EngineVersion,
		APIVersion:         c.APIVersion,
		Extensions:         unique(windowExtensions, c.Extensions),
		Layers:             unique(layers),
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses "major[.minor[.patch]]".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) > 3 {
		return Version{}, fmt.Errorf("malformed version %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("malformed version %q", s)
		}
		nums[i] = n
	}
	return Version{nums[0], nums[1], nums[2]}, nil
}

func parseDimension(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("dimension must be positive")
	}
	return uint32(n), nil
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func unique(lists ...[]string) []string {
	var (
		seen = map[string]bool{}
		out  []string
	)
	for _, list := range lists {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
