// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Bootstrap takes an uninitialised Context to device ready: it creates the
// instance, enumerates the devices once and creates the logical device on
// the first suitable one. A candidate without a graphics queue family or
// whose device creation fails is skipped in favour of the next suitable
// one from the same enumeration. The caller still owns c and must Destroy
// it, on failure as well.
func Bootstrap(c *Context, cfg InstanceConfiguration, window Window) (Device, error) {
	if err := c.CreateInstance(cfg, window); err != nil {
		return Device{}, err
	}

	devices, err := c.EnumerateDevices()
	if err != nil {
		return Device{}, err
	}

	if err := c.CreateFirstDevice(devices); err != nil {
		return Device{}, err
	}
	return c.Device()
}

// CreateFirstDevice walks the candidates in order and creates the logical
// device on the first suitable one that works. When every suitable
// candidate failed, the last failure is returned.
func (c *Context) CreateFirstDevice(candidates []PhysicalDeviceDescriptor) error {
	var lastErr error
	for next := 0; ; {
		pos, err := selectDevice(candidates[next:])
		if err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}
		physical := candidates[next+pos]
		next += pos + 1

		log := c.log.WithFields(logrus.Fields{
			"device":  physical.Name,
			"kind":    physical.Kind,
			"ordinal": physical.Ordinal,
		})
		log.Info("Physical device selected")

		family, err := SelectGraphicsQueueFamily(EnumerateQueueFamilies(physical))
		if err != nil {
			log.WithError(err).Warn("Skipping physical device")
			lastErr = err
			continue
		}

		if _, err := c.CreateLogicalDevice(physical, family); err != nil {
			if !errors.Is(err, ErrDeviceCreationFailed) {
				return err
			}
			log.WithError(err).Warn("Skipping physical device")
			lastErr = err
			continue
		}
		return nil
	}
}
