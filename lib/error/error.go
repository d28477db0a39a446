/*package error contains simple functions for reporting fatal celllists errors
from the command line tool. Library packages return errors instead.
*/
package error

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
)

// Prefix starts every fatal error message.
const Prefix = "celllists exited early with the following error:"

// exit is swapped out by tests.
var exit = os.Exit

// External reports an error to stderr and kills the program. It should be used
// when an error is something a user could reasonably be expected to fix through
// changes in configuration/data/environment. It has the same signature as the
// standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	log.Printf(Prefix+"\n"+format, a...)
	exit(1)
}

// Internal reports an error to stderr along with a stack trace and kills the
// program. It should be used when the error requires a code dive to fix. It
// has the same signature as the standard fmt.*printf() functions.
func Internal(format string, a ...interface{}) {
	log.Println(Prefix)
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n\n")
	debug.PrintStack()
	exit(1)
}
