// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/devblok/vkboot/core"
	vk "github.com/devblok/vulkan"
)

// NewVulkan loads the Vulkan API. procAddr is the vkGetInstanceProcAddr
// provided by the windowing layer, when nil the default loader is used.
func NewVulkan(procAddr unsafe.Pointer) (*Vulkan, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vk.Init()")
	}
	return &Vulkan{}, nil
}

// Vulkan implements core.Driver on top of the Vulkan API.
type Vulkan struct{}

var _ core.Driver = (*Vulkan)(nil)

// CreateInstance implements interface
func (v *Vulkan) CreateInstance(info core.InstanceInfo) (core.InstanceHandle, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         makeVersion(info.APIVersion),
		ApplicationVersion: makeVersion(info.ApplicationVersion),
		EngineVersion:      makeVersion(info.EngineVersion),
		PApplicationName:   safeString(info.ApplicationName),
		PEngineName:        safeString(info.EngineName),
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
	}

	var instance vk.Instance
	if err := check("vk.CreateInstance()", vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "vk.InitInstance()")
	}
	return instance, nil
}

// DestroyInstance implements interface
func (v *Vulkan) DestroyInstance(h core.InstanceHandle) error {
	instance, ok := h.(vk.Instance)
	if !ok {
		return errForeignHandle
	}
	vk.DestroyInstance(instance, nil)
	return nil
}

// PhysicalDevices implements interface
func (v *Vulkan) PhysicalDevices(h core.InstanceHandle) ([]core.PhysicalDeviceHandle, error) {
	instance, ok := h.(vk.Instance)
	if !ok {
		return nil, errForeignHandle
	}

	var deviceCount uint32
	if err := check("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, err
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := check("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, err
	}

	handles := make([]core.PhysicalDeviceHandle, deviceCount)
	for i := range handles {
		handles[i] = availableDevices[i]
	}
	return handles, nil
}

// PhysicalDeviceProperties implements interface
func (v *Vulkan) PhysicalDeviceProperties(h core.PhysicalDeviceHandle) (core.PhysicalDeviceProperties, error) {
	physicalDevice, ok := h.(vk.PhysicalDevice)
	if !ok {
		return core.PhysicalDeviceProperties{}, errForeignHandle
	}

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(physicalDevice, &properties)
	properties.Deref()

	return core.PhysicalDeviceProperties{
		Kind:          deviceKind(properties.DeviceType),
		VendorID:      int(properties.VendorID),
		DeviceID:      int(properties.DeviceID),
		DriverVersion: int(properties.DriverVersion),
		APIVersion:    int(properties.ApiVersion),
		Name:          vk.ToString(properties.DeviceName[:]),
	}, nil
}

// QueueFamilyProperties implements interface
func (v *Vulkan) QueueFamilyProperties(h core.PhysicalDeviceHandle) ([]core.QueueFamilyProperties, error) {
	physicalDevice, ok := h.(vk.PhysicalDevice)
	if !ok {
		return nil, errForeignHandle
	}

	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, queueFamilies)

	properties := make([]core.QueueFamilyProperties, queueFamilyCount)
	for i := range queueFamilies {
		queueFamilies[i].Deref()
		properties[i] = core.QueueFamilyProperties{
			Flags: queueFlags(queueFamilies[i].QueueFlags),
			Count: int(queueFamilies[i].QueueCount),
		}
	}
	return properties, nil
}

// CreateDevice implements interface
func (v *Vulkan) CreateDevice(h core.PhysicalDeviceHandle, info core.DeviceInfo) (core.DeviceHandle, error) {
	physicalDevice, ok := h.(vk.PhysicalDevice)
	if !ok {
		return nil, errForeignHandle
	}

	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: uint32(info.QueueFamilyIndex),
		QueueCount:       uint32(len(info.QueuePriorities)),
		PQueuePriorities: info.QueuePriorities,
	}}

	dci := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueInfos)),
		PQueueCreateInfos:    queueInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{{}},
	}

	var device vk.Device
	if err := check("vk.CreateDevice()", vk.CreateDevice(physicalDevice, &dci, nil, &device)); err != nil {
		return nil, err
	}
	return device, nil
}

// DeviceQueue implements interface
func (v *Vulkan) DeviceQueue(h core.DeviceHandle, family, index int) core.QueueHandle {
	device, ok := h.(vk.Device)
	if !ok {
		return nil
	}
	var queue vk.Queue
	vk.GetDeviceQueue(device, uint32(family), uint32(index), &queue)
	return queue
}

// DestroyDevice implements interface. The device is destroyed even when
// waiting for it to go idle fails, the failure is returned afterwards.
func (v *Vulkan) DestroyDevice(h core.DeviceHandle) error {
	device, ok := h.(vk.Device)
	if !ok {
		return errForeignHandle
	}
	err := check("vk.DeviceWaitIdle()", vk.DeviceWaitIdle(device))
	vk.DestroyDevice(device, nil)
	return err
}

func check(op string, result vk.Result) error {
	if result == vk.Success {
		return nil
	}
	return &core.APIError{
		Op:   op,
		Code: int32(result),
		Err:  vk.Error(result),
	}
}

func makeVersion(v core.Version) uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}
