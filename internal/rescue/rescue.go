// Package rescue contains the single crash-containment helper connection
// goroutines defer: a panic in one connection's pipeline must not take down
// the server or any other connection.
package rescue

import (
	"runtime"

	"github.com/lukluk/rendang/internal/logger"
	"github.com/lukluk/rendang/internal/metrics"
)

var PanicHandlers = []func(any){
	incPanicCounter,
	logPanic,
}

func incPanicCounter(_ any) {
	metrics.PanicsTotal.Inc()
}

func logPanic(r any) {
	const size = 64 << 10
	stacktrace := make([]byte, size)
	stacktrace = stacktrace[:runtime.Stack(stacktrace, false)]
	if _, ok := r.(string); ok {
		logger.Errorf("observed a panic: %s\n%s", r, stacktrace)
	} else {
		logger.Errorf("observed a panic: %#v (%v)\n%s", r, r, stacktrace)
	}
}

// HandleCrash is deferred at the top of every connection goroutine. It must
// be deferred directly (not wrapped in a closure called elsewhere), since
// recover only stops a panic when called directly by a deferred function.
func HandleCrash() {
	if r := recover(); r != nil {
		for _, fn := range PanicHandlers {
			fn(r)
		}
	}
}
