// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core bootstraps a GPU context: it probes the physical devices
// exposed by the graphics API, selects one, creates the logical device
// and its graphics queue, and tears all of it down again in the order
// the API requires. The graphics API itself is reached only through the
// Driver interface, the Vulkan implementation lives in package device.
package core

// Opaque handles to objects owned by the graphics API. Only the Driver
// that produced a handle knows what is inside of it.
type (
	InstanceHandle       interface{}
	PhysicalDeviceHandle interface{}
	DeviceHandle         interface{}
	QueueHandle          interface{}
)

// Version is a major.minor.patch triple as used by the graphics API.
type Version struct {
	Major int
	Minor int
	Patch int
}

// InstanceInfo is everything the Driver needs to create an instance.
type InstanceInfo struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	APIVersion         Version
	Extensions         []string
	Layers             []string
}

// DeviceInfo describes the logical device to create.
type DeviceInfo struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

// PhysicalDeviceProperties are the general properties of a physical device.
type PhysicalDeviceProperties struct {
	Kind          DeviceKind
	VendorID      int
	DeviceID      int
	DriverVersion int
	APIVersion    int
	Name          string
}

// QueueFamilyProperties are reported per queue family, in family index order.
type QueueFamilyProperties struct {
	Flags QueueFlags
	Count int
}

// Prober is the read-only part of the graphics API.
type Prober interface {
	// PhysicalDevices returns the physical devices visible to the instance,
	// in whatever order the API reports them.
	PhysicalDevices(InstanceHandle) ([]PhysicalDeviceHandle, error)

	// PhysicalDeviceProperties describes one physical device.
	PhysicalDeviceProperties(PhysicalDeviceHandle) (PhysicalDeviceProperties, error)

	// QueueFamilyProperties lists the queue families of a physical device,
	// the position in the slice is the family index.
	QueueFamilyProperties(PhysicalDeviceHandle) ([]QueueFamilyProperties, error)
}

// Driver is the graphics API as seen by the bootstrap. Only Context calls
// the Destroy methods.
type Driver interface {
	Prober

	CreateInstance(InstanceInfo) (InstanceHandle, error)
	DestroyInstance(InstanceHandle) error

	CreateDevice(PhysicalDeviceHandle, DeviceInfo) (DeviceHandle, error)
	DeviceQueue(device DeviceHandle, family, index int) QueueHandle
	DestroyDevice(DeviceHandle) error
}

// Releasable is anything holding resources that must be given back.
type Releasable interface {
	Release() error
}

// Window is the windowing collaborator. It knows which instance extensions
// the platform needs to present to it, and it is released after the
// instance during teardown.
type Window interface {
	Releasable

	// RequiredInstanceExtensions lists instance extensions the platform needs.
	RequiredInstanceExtensions() []string
}
