// Package interceptors provides ready made di.Interceptor implementations.
package interceptors

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sghaida/bring/di"
)

// InitializingBean is implemented by beans that want a hook while they pass
// through the interceptor chain, before dependencies are injected.
type InitializingBean interface {
	BeforeInit()
}

// Lifecycle calls BeforeInit on beans implementing InitializingBean and keeps the bean.
func Lifecycle() di.Interceptor {
	return di.InterceptorFunc(func(bean any, _ string) any {
		if ib, ok := bean.(InitializingBean); ok {
			ib.BeforeInit()
		}
		return bean
	})
}

// Veto drops the named beans: they stay in the container as nil entries.
func Veto(names ...string) di.Interceptor {
	vetoed := make(map[string]struct{}, len(names))
	for _, n := range names {
		vetoed[n] = struct{}{}
	}
	return di.InterceptorFunc(func(bean any, name string) any {
		if _, ok := vetoed[name]; ok {
			return nil
		}
		return bean
	})
}

// Logging debug-logs every bean passing through the chain.
func Logging(logger *zap.Logger) di.Interceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return di.InterceptorFunc(func(bean any, name string) any {
		logger.Debug("bean intercepted",
			zap.String("bean", name),
			zap.String("type", fmt.Sprintf("%T", bean)),
		)
		return bean
	})
}
