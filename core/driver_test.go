// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"fmt"

	"github.com/devblok/vkboot/core"
)

type mockInstance struct{ id int }

type mockPhysicalDevice struct{ id int }

type mockDevice struct{ physical int }

type mockQueue struct {
	physical, family, index int
}

type mockGPU struct {
	props    core.PhysicalDeviceProperties
	families []core.QueueFamilyProperties

	// createErr fails vkCreateDevice on this GPU.
	createErr error
}

// mockDriver records every call it receives, in order.
type mockDriver struct {
	gpus []mockGPU

	instanceErr        error
	enumerateErr       error
	destroyDeviceErr   error
	destroyInstanceErr error
	panicOnDestroy     bool

	calls        []string
	instanceInfo core.InstanceInfo
	deviceInfos  []core.DeviceInfo
}

var _ core.Driver = (*mockDriver)(nil)

func (m *mockDriver) record(format string, args ...interface{}) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockDriver) CreateInstance(info core.InstanceInfo) (core.InstanceHandle, error) {
	m.record("CreateInstance")
	m.instanceInfo = info
	if m.instanceErr != nil {
		return nil, m.instanceErr
	}
	return &mockInstance{id: 1}, nil
}

func (m *mockDriver) DestroyInstance(h core.InstanceHandle) error {
	m.record("DestroyInstance")
	if _, ok := h.(*mockInstance); !ok {
		return fmt.Errorf("foreign instance %v", h)
	}
	return m.destroyInstanceErr
}

func (m *mockDriver) PhysicalDevices(h core.InstanceHandle) ([]core.PhysicalDeviceHandle, error) {
	m.record("PhysicalDevices")
	if m.enumerateErr != nil {
		return nil, m.enumerateErr
	}
	handles := make([]core.PhysicalDeviceHandle, len(m.gpus))
	for i := range m.gpus {
		handles[i] = &mockPhysicalDevice{id: i}
	}
	return handles, nil
}

func (m *mockDriver) PhysicalDeviceProperties(h core.PhysicalDeviceHandle) (core.PhysicalDeviceProperties, error) {
	return m.gpus[h.(*mockPhysicalDevice).id].props, nil
}

func (m *mockDriver) QueueFamilyProperties(h core.PhysicalDeviceHandle) ([]core.QueueFamilyProperties, error) {
	return m.gpus[h.(*mockPhysicalDevice).id].families, nil
}

func (m *mockDriver) CreateDevice(h core.PhysicalDeviceHandle, info core.DeviceInfo) (core.DeviceHandle, error) {
	id := h.(*mockPhysicalDevice).id
	m.record("CreateDevice %d family %d", id, info.QueueFamilyIndex)
	m.deviceInfos = append(m.deviceInfos, info)
	if err := m.gpus[id].createErr; err != nil {
		return nil, err
	}
	return &mockDevice{physical: id}, nil
}

func (m *mockDriver) DeviceQueue(h core.DeviceHandle, family, index int) core.QueueHandle {
	d := h.(*mockDevice)
	m.record("DeviceQueue %d family %d index %d", d.physical, family, index)
	return &mockQueue{physical: d.physical, family: family, index: index}
}

func (m *mockDriver) DestroyDevice(h core.DeviceHandle) error {
	m.record("DestroyDevice")
	if m.panicOnDestroy {
		panic("driver crashed")
	}
	return m.destroyDeviceErr
}

type mockWindow struct {
	extensions []string
	releaseErr error
	driver     *mockDriver
	released   int
}

func (w *mockWindow) RequiredInstanceExtensions() []string {
	return w.extensions
}

func (w *mockWindow) Release() error {
	w.released++
	if w.driver != nil {
		w.driver.record("ReleaseWindow")
	}
	return w.releaseErr
}

func gpu(kind core.DeviceKind, name string, families ...core.QueueFlags) mockGPU {
	g := mockGPU{
		props: core.PhysicalDeviceProperties{
			Kind: kind,
			Name: name,
		},
	}
	for _, f := range families {
		g.families = append(g.families, core.QueueFamilyProperties{Flags: f, Count: 1})
	}
	return g
}
