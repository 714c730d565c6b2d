// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/cockroachdb/errors"
)

// queuePriority is the priority of the single graphics queue.
const queuePriority float32 = 1.0

// createInstance creates the instance. Extension availability is left to
// the driver, failure is always fatal.
func createInstance(d Driver, info InstanceInfo) (InstanceHandle, error) {
	instance, err := d.CreateInstance(info)
	if err != nil {
		return nil, newStageError(StageInstance, ErrInstanceCreationFailed, err)
	}
	if instance == nil {
		return nil, newStageError(StageInstance, ErrInstanceCreationFailed, errors.New("driver returned a nil instance"))
	}
	return instance, nil
}

// createLogicalDevice creates a logical device with exactly one queue from
// the given family and fetches slot 0 of it. No features or device
// extensions are requested.
func createLogicalDevice(d Driver, physical PhysicalDeviceDescriptor, family int) (DeviceHandle, QueueHandle, error) {
	if physical.Handle == nil {
		return nil, nil, newStageError(StageDevice, ErrDeviceCreationFailed, errors.New("descriptor has no physical device handle"))
	}
	if !hasFamily(physical, family) {
		return nil, nil, newStageError(StageDevice, ErrDeviceCreationFailed, errors.Newf("queue family %d not present on %q", family, physical.Name))
	}

	device, err := d.CreateDevice(physical.Handle, DeviceInfo{
		QueueFamilyIndex: family,
		QueuePriorities:  []float32{queuePriority},
	})
	if err != nil {
		return nil, nil, newStageError(StageDevice, ErrDeviceCreationFailed, err)
	}
	if device == nil {
		return nil, nil, newStageError(StageDevice, ErrDeviceCreationFailed, errors.New("driver returned a nil device"))
	}

	return device, d.DeviceQueue(device, family, 0), nil
}

func hasFamily(physical PhysicalDeviceDescriptor, family int) bool {
	for _, f := range physical.QueueFamilies {
		if f.Index == family {
			return f.Count > 0
		}
	}
	return false
}
