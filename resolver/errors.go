package resolver

import (
	"github.com/pkg/errors"
)

// Outcomes of a query which callers need to tell apart. A missing record
// (ErrNotFound, ErrNoData) is a normal state of the world for the record
// reader whereas a timeout or a server failure says nothing about the record
// at all. Wrapped errors remain matchable with errors.Is.
var (
	ErrTimeout  = errors.New("dns: query timed out")
	ErrNotFound = errors.New("dns: name does not exist")
	ErrNoData   = errors.New("dns: no records of requested type")
	ErrServFail = errors.New("dns: server failed")
)
