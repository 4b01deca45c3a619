package builtin

import (
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/vestforge/vesting-actors/actors/runtime"
)

///// Code shared by multiple built-in actors. /////

// RequireNoErr aborts with the given exit code when err is non-nil,
// appending the error to the formatted message.
func RequireNoErr(rt runtime.Runtime, err error, code exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		rt.Abortf(code, msg+": %s", append(args, err)...)
	}
}

// RequireParam aborts with ErrIllegalArgument when the predicate is false.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// RequireSuccess propagates a failed send by aborting the current method
// with the same exit code.
func RequireSuccess(rt runtime.Runtime, e exitcode.ExitCode, msg string, args ...interface{}) {
	if !e.IsSuccess() {
		rt.Abortf(e, msg, args...)
	}
}
