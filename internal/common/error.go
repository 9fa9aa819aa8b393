package common

import (
	"encoding/json"
	"errors"
	"log"
	"runtime"
	"strconv"

	"github.com/DODOEX/b64huff/utils/helpers"
	"github.com/duke-git/lancet/v2/slice"
)

type ErrorKind = string

const (
	KindIO                ErrorKind = "IOError"
	KindResourceExhausted ErrorKind = "ResourceExhausted"
	KindMalformedArtifact ErrorKind = "MalformedArtifact"
	KindCodeTooLong       ErrorKind = "CodeTooLong"
)

// Sentinels for errors.Is; any error of the same kind matches.
var (
	ErrIO                error = codecError{Name: KindIO}
	ErrResourceExhausted error = codecError{Name: KindResourceExhausted}
	ErrMalformedArtifact error = codecError{Name: KindMalformedArtifact}
	ErrCodeTooLong       error = codecError{Name: KindCodeTooLong}
)

type CodecErrors interface {
	JobStatus() JobStatus
	Kind() ErrorKind
	Message() string
	Error() string
	ExitCode() int
	StatusCode() int
	Body() []byte
	String() string
}

func IsCodecErrors(err error) bool {
	var e codecError
	return errors.As(err, &e)
}

// AsCodecErrors finds the first CodecErrors in err's chain.
func AsCodecErrors(err error) (CodecErrors, bool) {
	var e codecError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

type codecError struct {
	Name    string `json:"error"`
	Msg     string `json:"message"`
	Details error  `json:"-"`
	Status  int    `json:"code"`
	file    string // 文件名
	line    int    // 行号
}

func (e codecError) JobStatus() JobStatus {
	switch e.Name {
	case KindIO:
		return Fail
	case KindResourceExhausted, KindMalformedArtifact:
		return Reject
	}
	return Error
}

func (e codecError) Kind() ErrorKind {
	return e.Name
}

func (e codecError) Message() string {
	return e.Msg
}

func (e codecError) Error() string {
	if e.Details == nil {
		return helpers.Concat(e.Name, ": ", e.Msg)
	}
	return helpers.Concat(e.Name, ": ", e.Msg, ": ", e.Details.Error())
}

func (e codecError) Unwrap() error {
	return e.Details
}

func (e codecError) Is(target error) bool {
	t, ok := target.(codecError)
	return ok && t.Name == e.Name && t.Msg == "" && t.Details == nil
}

func (e codecError) ExitCode() int {
	switch e.Name {
	case KindIO:
		return 2
	case KindResourceExhausted:
		return 3
	case KindMalformedArtifact:
		return 4
	case KindCodeTooLong:
		return 5
	}
	return 1
}

func (e codecError) StatusCode() int {
	return e.Status
}

func (e codecError) Body() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		log.Fatal(err)
	}
	return data
}

func (e codecError) String() string {
	return e.Error() + " \n" + e.file + ":" + strconv.Itoa(e.line)
}

func NewCodecError(status int, name, msg string, errs ...error) codecError {
	errs = slice.Compact(errs)
	if len(errs) <= 0 {
		return codecError{
			Status:  status,
			Name:    name,
			Msg:     msg,
			Details: nil,
		}
	}

	return codecError{
		Status:  status,
		Name:    name,
		Msg:     msg,
		Details: errs[0],
	}
}

func IOError(msg string, errs ...error) codecError {
	err := NewCodecError(500, KindIO, msg, errs...)
	_, file, line, _ := runtime.Caller(1)
	err.file, err.line = file, line
	return err
}

func ResourceExhaustedError(msg string, errs ...error) codecError {
	err := NewCodecError(413, KindResourceExhausted, msg, errs...)
	_, file, line, _ := runtime.Caller(1)
	err.file, err.line = file, line
	return err
}

func MalformedArtifactError(msg string, errs ...error) codecError {
	err := NewCodecError(422, KindMalformedArtifact, msg, errs...)
	_, file, line, _ := runtime.Caller(1)
	err.file, err.line = file, line
	return err
}

func CodeTooLongError(msg string, errs ...error) codecError {
	err := NewCodecError(500, KindCodeTooLong, msg, errs...)
	_, file, line, _ := runtime.Caller(1)
	err.file, err.line = file, line
	return err
}
