package server

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
)

// debugEnv turns on stack traces in error logs when set.
const debugEnv = "LOADDECK_DEBUG"

// errid tags an error with the request it happened in.
type errid struct {
	reqid string
	err   error
}

func (e errid) wrap(cause error, txt string) error {
	err := errors.WithMessage(cause, txt)
	if debugging() {
		err = errors.Wrap(cause, txt)
	}
	e.err = err
	return e
}

func (e errid) Error() string {
	return fmt.Sprintf("%s: %s", e.reqid, e.err.Error())
}

func (e errid) Unwrap() error {
	return e.err
}

func debugging() bool {
	_, ok := os.LookupEnv(debugEnv)
	return ok
}

// logError writes the full error to the log. Clients only ever see the short
// message passed to the response helpers.
func logError(err error) {
	if err == nil {
		return
	}
	x, ok := err.(errid)
	if !ok {
		log.Printf("err=%v", err)
		return
	}
	if debugging() {
		log.Printf("req_id=%s err=%+v", x.reqid, x.err)
		return
	}
	log.Printf("req_id=%s err=%v", x.reqid, errors.Cause(x.err))
}
