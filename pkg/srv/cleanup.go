package srv

import "context"

// Cleanup adapts a close function, such as a database handle's Close, to a
// Service so it is released in shutdown order with everything else.
type Cleanup func() error

func (c Cleanup) Start(context.Context) error {
	return nil
}

func (c Cleanup) Shutdown(context.Context) error {
	if c == nil {
		return nil
	}
	return c()
}

func NewCleanup(fn func() error) Service {
	return Cleanup(fn)
}
