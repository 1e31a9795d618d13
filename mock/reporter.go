package mock

import "fmt"

// TestReporter receives mock protocol violations. *testing.T satisfies it.
//
// Fatalf must not return control to the engine (testing.T stops the test
// goroutine; the default reporter panics). Errorf is used for teardown
// verification failures, which are reported one per unmet expectation.
type TestReporter interface {
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// panicReporter is the fallback when no TestReporter is supplied. It keeps
// the "always fatal, never a silent wrong answer" contract by panicking
// with the full diagnostic.
type panicReporter struct{}

func (panicReporter) Errorf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

func (panicReporter) Fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
