// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"fmt"
	"log"
)

// Error returns the error status of the engine. We return an empty string if
// there are no errors.
func (z *ZDD) Error() string {
	if z.error == nil {
		return ""
	}
	return z.error.Error()
}

// Errored returns true if there was an error during a computation.
func (z *ZDD) Errored() bool {
	return z.error != nil
}

func (z *ZDD) seterror(format string, a ...interface{}) {
	if z.error != nil {
		format = format + "; " + z.Error()
	}
	z.error = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(z.error)
	}
}
