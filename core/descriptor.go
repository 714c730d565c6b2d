// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "strings"

// DeviceKind classifies a physical device. Values follow VkPhysicalDeviceType.
type DeviceKind int

// Device kinds
const (
	KindOther DeviceKind = iota
	KindIntegrated
	KindDiscrete
	KindVirtual
	KindSoftware
)

func (k DeviceKind) String() string {
	switch k {
	case KindIntegrated:
		return "integrated"
	case KindDiscrete:
		return "discrete"
	case KindVirtual:
		return "virtual"
	case KindSoftware:
		return "software"
	default:
		return "other"
	}
}

// MarshalText lets descriptors print their kind by name.
func (k DeviceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// QueueFlags are the operations a queue family supports. Bits follow VkQueueFlagBits.
type QueueFlags uint32

// Queue operation bits
const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// Has reports whether all bits of o are set.
func (f QueueFlags) Has(o QueueFlags) bool {
	return f&o == o
}

func (f QueueFlags) String() string {
	var names []string
	if f.Has(QueueGraphics) {
		names = append(names, "graphics")
	}
	if f.Has(QueueCompute) {
		names = append(names, "compute")
	}
	if f.Has(QueueTransfer) {
		names = append(names, "transfer")
	}
	if f.Has(QueueSparseBinding) {
		names = append(names, "sparse")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// MarshalText lets descriptors print their flags by name.
func (f QueueFlags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// QueueFamilyDescriptor describes one queue family of a physical device.
type QueueFamilyDescriptor struct {
	Index int        `json:"index"`
	Flags QueueFlags `json:"flags"`
	Count int        `json:"count"`
}

// PhysicalDeviceDescriptor is a snapshot of one candidate GPU taken at
// enumeration time. It is never modified afterwards, treat it as a value.
type PhysicalDeviceDescriptor struct {
	// Ordinal is the position of the device in the enumeration result.
	Ordinal int `json:"ordinal"`

	Kind          DeviceKind `json:"kind"`
	Name          string     `json:"name"`
	VendorID      int        `json:"vendorID"`
	DeviceID      int        `json:"deviceID"`
	DriverVersion int        `json:"driverVersion"`
	APIVersion    int        `json:"apiVersion"`

	// QueueFamilies are ordered by ascending family index.
	QueueFamilies []QueueFamilyDescriptor `json:"queueFamilies"`

	Handle PhysicalDeviceHandle `json:"-"`
}
