package assert

import (
	"fmt"

	"github.com/bytearena/streetboids/common/utils"
)

// Assert signals a broken programming contract; it never returns when cond is false.
func Assert(cond bool, msg string) {
	utils.Assert(cond, "Assertion error: "+msg)
}

func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		Assert(cond, fmt.Sprintf(format, args...))
	}
}
