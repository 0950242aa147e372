/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lookup

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every error Resolve returns for a
// request that is missing a required field.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrDependencyNotSupplied = invalidArgument("dependency is not supplied")
	ErrFilenameNotSupplied   = invalidArgument("filename is not supplied")
	ErrDirectoryNotSupplied  = invalidArgument("directory is not supplied")
)

type argumentError struct {
	msg string
}

func invalidArgument(msg string) error {
	return &argumentError{msg: msg}
}

func (e *argumentError) Error() string {
	return e.msg
}

func (e *argumentError) Unwrap() error {
	return ErrInvalidArgument
}

// Request describes a single dependency lookup.
//
// A nil field was not supplied. An empty string is a supplied value and
// takes part in resolution like any other.
type Request struct {
	// Dependency is the specifier written after @import or @require.
	Dependency *string `yaml:"dependency" json:"dependency"`

	// Filename is the stylesheet containing the import.
	Filename *string `yaml:"filename" json:"filename"`

	// Directory is the project's root stylesheet directory.
	Directory *string `yaml:"directory" json:"directory"`
}

// NewRequest returns a Request with all three fields supplied.
func NewRequest(dependency, filename, directory string) Request {
	return Request{
		Dependency: &dependency,
		Filename:   &filename,
		Directory:  &directory,
	}
}

// Validate reports the first missing field, checked in the order
// dependency, filename, directory.
func (r Request) Validate() error {
	if r.Dependency == nil {
		return ErrDependencyNotSupplied
	}
	if r.Filename == nil {
		return ErrFilenameNotSupplied
	}
	if r.Directory == nil {
		return ErrDirectoryNotSupplied
	}
	return nil
}

// String renders the request for diagnostics.
func (r Request) String() string {
	return fmt.Sprintf("{dependency: %s, filename: %s, directory: %s}",
		show(r.Dependency), show(r.Filename), show(r.Directory))
}

func show(s *string) string {
	if s == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%q", *s)
}
