package di

import (
	"fmt"

	"go.uber.org/zap"
)

// Interceptor is invoked on every newly built bean before it is considered finished.
//
// BeforeInit returns the bean to keep (possibly a replacement) or nil to stop the
// chain for that bean. A nil result becomes the final value of the bean.
type Interceptor interface {
	BeforeInit(bean any, name string) any
}

// InterceptorFunc adapts a function to the Interceptor interface.
type InterceptorFunc func(bean any, name string) any

// BeforeInit implements Interceptor.
func (f InterceptorFunc) BeforeInit(bean any, name string) any { return f(bean, name) }

// Chain is an ordered, append-only list of interceptors.
type Chain struct {
	interceptors []Interceptor
	logger       *zap.Logger
}

// NewChain returns a chain running interceptors in the given order.
// A nil logger disables logging.
func NewChain(logger *zap.Logger, interceptors ...Interceptor) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Chain{logger: logger}
	return c.Add(interceptors...)
}

// Add appends interceptors, skipping nil entries, and returns the chain.
func (c *Chain) Add(interceptors ...Interceptor) *Chain {
	for _, in := range interceptors {
		if in != nil {
			c.interceptors = append(c.interceptors, in)
		}
	}
	return c
}

func (c *Chain) clone() *Chain {
	return &Chain{
		interceptors: append([]Interceptor(nil), c.interceptors...),
		logger:       c.logger,
	}
}

// Len returns the number of registered interceptors.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.interceptors)
}

// Apply runs the chain over bean. Each interceptor receives the result of the
// previous one; the first nil result stops the chain and is returned.
func (c *Chain) Apply(bean any, name string) any {
	if c == nil {
		return bean
	}
	result := bean
	for _, in := range c.interceptors {
		result = in.BeforeInit(result, name)
		if isNil(result) {
			c.logger.Info("interceptor returned nil, skipping the rest of the chain",
				zap.String("interceptor", fmt.Sprintf("%T", in)),
				zap.String("bean", name),
			)
			return nil
		}
	}
	return result
}
