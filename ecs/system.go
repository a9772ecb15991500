package ecs

// System is a behaviour run once per frame by the Scheduler. Systems are
// usually structs whose Query and Singleton fields are bound on registration;
// any other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
