package mock

import (
	"fmt"
	"runtime"
)

// callSite identifies where an expectation or sequence binding was declared.
// Captured at declaration time so violation reports can point at the test
// line that set the constraint up, not at the engine internals.
type callSite struct {
	file string
	line int
}

// captureSite records the caller's location. skip counts stack frames above
// the function calling captureSite.
func captureSite(skip int) callSite {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return callSite{}
	}
	return callSite{file: file, line: line}
}

func (cs callSite) String() string {
	if cs.file == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", cs.file, cs.line)
}
