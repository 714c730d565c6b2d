// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device implements core.Driver with the Vulkan API.
package device

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/devblok/vkboot/core"
	vk "github.com/devblok/vulkan"
)

var errForeignHandle = errors.New("handle was not created by the Vulkan driver")

func deviceKind(t vk.PhysicalDeviceType) core.DeviceKind {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return core.KindIntegrated
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return core.KindDiscrete
	case vk.PhysicalDeviceTypeVirtualGpu:
		return core.KindVirtual
	case vk.PhysicalDeviceTypeCpu:
		return core.KindSoftware
	default:
		return core.KindOther
	}
}

func queueFlags(flags vk.QueueFlags) core.QueueFlags {
	var f core.QueueFlags
	if flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
		f |= core.QueueGraphics
	}
	if flags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
		f |= core.QueueCompute
	}
	if flags&vk.QueueFlags(vk.QueueTransferBit) != 0 {
		f |= core.QueueTransfer
	}
	if flags&vk.QueueFlags(vk.QueueSparseBindingBit) != 0 {
		f |= core.QueueSparseBinding
	}
	return f
}

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

func safeStrings(sgs []string) []string {
	safe := []string{}
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}
