// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// EnumerateDevices takes a snapshot of every physical device visible to
// the instance. The order is the one reported by the API. An empty result
// is ErrNoDevicesFound, a nil instance is ErrNoInstance.
func EnumerateDevices(p Prober, instance InstanceHandle) ([]PhysicalDeviceDescriptor, error) {
	if instance == nil {
		return nil, ErrNoInstance
	}

	handles, err := p.PhysicalDevices(instance)
	if err != nil {
		return nil, errors.Wrap(err, "core.EnumerateDevices()")
	}
	if len(handles) == 0 {
		return nil, newStageError(StageDiscovery, ErrNoDevicesFound, nil)
	}

	descriptors := make([]PhysicalDeviceDescriptor, len(handles))
	for i, handle := range handles {
		props, err := p.PhysicalDeviceProperties(handle)
		if err != nil {
			return nil, errors.Wrapf(err, "core.EnumerateDevices()[%d]", i)
		}

		families, err := p.QueueFamilyProperties(handle)
		if err != nil {
			return nil, errors.Wrapf(err, "core.EnumerateDevices()[%d]", i)
		}

		descriptors[i] = PhysicalDeviceDescriptor{
			Ordinal:       i,
			Kind:          props.Kind,
			Name:          props.Name,
			VendorID:      props.VendorID,
			DeviceID:      props.DeviceID,
			DriverVersion: props.DriverVersion,
			APIVersion:    props.APIVersion,
			QueueFamilies: queueFamilyDescriptors(families),
			Handle:        handle,
		}
	}
	return descriptors, nil
}

func queueFamilyDescriptors(families []QueueFamilyProperties) []QueueFamilyDescriptor {
	qfd := make([]QueueFamilyDescriptor, len(families))
	for i, f := range families {
		qfd[i] = QueueFamilyDescriptor{
			Index: i,
			Flags: f.Flags,
			Count: f.Count,
		}
	}
	return qfd
}

// EnumerateQueueFamilies returns the queue families of the device ordered
// by ascending family index. The returned slice is a copy.
func EnumerateQueueFamilies(d PhysicalDeviceDescriptor) []QueueFamilyDescriptor {
	families := make([]QueueFamilyDescriptor, len(d.QueueFamilies))
	copy(families, d.QueueFamilies)
	sort.SliceStable(families, func(i, j int) bool {
		return families[i].Index < families[j].Index
	})
	return families
}
