// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

// State of a Context.
type State int

// Context states
const (
	StateUninitialized State = iota
	StateInstanceReady
	StateDeviceReady
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInstanceReady:
		return "instance ready"
	case StateDeviceReady:
		return "device ready"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger, the logrus standard logger is used otherwise.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Context) {
		c.log = l
	}
}

// NewContext creates an uninitialised Context on top of the driver.
func NewContext(driver Driver, opts ...Option) *Context {
	c := &Context{
		driver: driver,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("context", uuid.New().String())
	return c
}

// Context owns the GPU objects of one bootstrap: the instance, the
// logical device with its queue, and the window handed over with the
// instance. It is the only place they are destroyed, always device
// first, then instance, then window. A Context is not safe for concurrent use.
type Context struct {
	driver Driver
	log    logrus.FieldLogger
	state  State

	instance InstanceHandle
	window   Window

	physical PhysicalDeviceDescriptor
	device   DeviceHandle
	queue    *Queue
}

// State returns the current state.
func (c *Context) State() State {
	return c.state
}

// CreateInstance creates the instance with the extensions the window
// requires. The window may be nil for headless use. On success the
// Context owns both the instance and the window.
func (c *Context) CreateInstance(cfg InstanceConfiguration, window Window) error {
	if c.state != StateUninitialized {
		return errors.Wrapf(ErrInvalidState, "create instance while %s", c.state)
	}

	var windowExtensions []string
	if window != nil {
		windowExtensions = window.RequiredInstanceExtensions()
	}
	info := cfg.InstanceInfo(windowExtensions)

	start := hrtime.Now()
	instance, err := createInstance(c.driver, info)
	if err != nil {
		return err
	}

	c.instance = instance
	c.window = window
	c.state = StateInstanceReady

	c.log.WithFields(logrus.Fields{
		"stage":   StageInstance,
		"elapsed": hrtime.Since(start),
	}).Debug("vk.CreateInstance()")
	c.log.WithFields(logrus.Fields{
		"application": info.ApplicationName,
		"engine":      info.EngineName,
		"extensions":  info.Extensions,
		"layers":      info.Layers,
	}).Info("Vulkan instance created")
	return nil
}

// EnumerateDevices probes the physical devices of the instance.
func (c *Context) EnumerateDevices() ([]PhysicalDeviceDescriptor, error) {
	if c.state != StateInstanceReady && c.state != StateDeviceReady {
		return nil, errors.Wrapf(ErrNoInstance, "enumerate devices while %s", c.state)
	}

	start := hrtime.Now()
	descriptors, err := EnumerateDevices(c.driver, c.instance)
	c.log.WithFields(logrus.Fields{
		"stage":   StageDiscovery,
		"elapsed": hrtime.Since(start),
		"devices": len(descriptors),
	}).Debug("core.EnumerateDevices()")
	return descriptors, err
}

// CreateLogicalDevice creates the logical device and its graphics queue
// on the given family. A failure leaves the Context ready for another
// attempt with a different candidate.
func (c *Context) CreateLogicalDevice(physical PhysicalDeviceDescriptor, family int) (*Queue, error) {
	if c.state != StateInstanceReady {
		return nil, errors.Wrapf(ErrInvalidState, "create logical device while %s", c.state)
	}

	start := hrtime.Now()
	device, queue, err := createLogicalDevice(c.driver, physical, family)
	if err != nil {
		return nil, err
	}

	c.physical = physical
	c.device = device
	c.queue = &Queue{
		family: family,
		handle: queue,
		valid:  true,
	}
	c.state = StateDeviceReady

	c.log.WithFields(logrus.Fields{
		"stage":   StageDevice,
		"elapsed": hrtime.Since(start),
	}).Debug("vk.CreateDevice()")
	c.log.WithFields(logrus.Fields{
		"device": physical.Name,
		"kind":   physical.Kind,
		"family": family,
	}).Info("Logical device and graphics queue created")
	return c.queue, nil
}

// Device is what a renderer receives once the Context is device ready.
type Device struct {
	Handle   DeviceHandle
	Queue    *Queue
	Physical PhysicalDeviceDescriptor
}

// Device returns the logical device, its queue and the physical device
// it was created on.
func (c *Context) Device() (Device, error) {
	if c.state != StateDeviceReady {
		return Device{}, errors.Wrapf(ErrInvalidState, "device requested while %s", c.state)
	}
	return Device{
		Handle:   c.device,
		Queue:    c.queue,
		Physical: c.physical,
	}, nil
}

// Destroy tears the Context down. Whatever was created is destroyed, the
// logical device first, then the instance, then the window. Failures are
// logged and teardown carries on. Calling Destroy again does nothing.
func (c *Context) Destroy() {
	if c == nil {
		return
	}
	prev := c.state
	c.state = StateDestroyed

	switch prev {
	case StateDestroyed:
		return
	case StateUninitialized:
		return
	}

	if prev == StateDeviceReady {
		c.queue.invalidate()
		c.release("Logical device destroyed", func() error {
			return c.driver.DestroyDevice(c.device)
		})
		c.device = nil
	}

	c.release("Vulkan instance destroyed", func() error {
		return c.driver.DestroyInstance(c.instance)
	})
	c.instance = nil

	if c.window != nil {
		c.release("Window destroyed", c.window.Release)
		c.window = nil
	}
}

// release runs one teardown step, a failing or panicking step is logged
// and never stops the ones after it.
func (c *Context) release(done string, fn func() error) {
	log := c.log.WithField("stage", StageTeardown)
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error(done + " with a panic")
		}
	}()

	if err := fn(); err != nil {
		log.WithError(err).Error(done + " with an error")
		return
	}
	log.Info(done)
}

// Queue is a non-owning reference to the graphics queue of a logical
// device. It is invalid as soon as the device is destroyed. The graphics
// API forbids concurrent use of one queue, Do serialises access to it.
type Queue struct {
	mu     sync.Mutex
	family int
	handle QueueHandle
	valid  bool
}

// Family returns the queue family index the queue was taken from.
func (q *Queue) Family() int {
	return q.family
}

// Valid reports whether the owning device still exists.
func (q *Queue) Valid() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.valid
}

// Do calls fn with the queue handle while holding the queue exclusively.
func (q *Queue) Do(fn func(QueueHandle) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.valid {
		return ErrQueueInvalid
	}
	return fn(q.handle)
}

func (q *Queue) invalidate() {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.valid = false
	q.handle = nil
	q.mu.Unlock()
}
