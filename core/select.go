// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// Suitable is the device predicate: discrete and integrated GPUs qualify,
// virtual, software and other devices do not.
func Suitable(d PhysicalDeviceDescriptor) bool {
	return d.Kind == KindDiscrete || d.Kind == KindIntegrated
}

// SelectDevice returns the first suitable descriptor in enumeration order.
// There is no scoring, the first match wins.
func SelectDevice(descriptors []PhysicalDeviceDescriptor) (PhysicalDeviceDescriptor, error) {
	pos, err := selectDevice(descriptors)
	if err != nil {
		return PhysicalDeviceDescriptor{}, err
	}
	return descriptors[pos], nil
}

// selectDevice is SelectDevice returning the position of the match.
func selectDevice(descriptors []PhysicalDeviceDescriptor) (int, error) {
	if len(descriptors) == 0 {
		return 0, newStageError(StageSelection, ErrNoDevicesFound, nil)
	}
	for i, d := range descriptors {
		if Suitable(d) {
			return i, nil
		}
	}
	return 0, newStageError(StageSelection, ErrNoSuitableDevice, nil)
}

// SelectGraphicsQueueFamily returns the lowest family index that supports
// graphics operations.
func SelectGraphicsQueueFamily(families []QueueFamilyDescriptor) (int, error) {
	index := -1
	for _, f := range families {
		if !f.Flags.Has(QueueGraphics) {
			continue
		}
		if index < 0 || f.Index < index {
			index = f.Index
		}
	}
	if index < 0 {
		return 0, newStageError(StageQueueFamily, ErrNoGraphicsQueueFamily, nil)
	}
	return index, nil
}
