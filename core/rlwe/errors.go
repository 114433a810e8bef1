package rlwe

import "fmt"

// ParameterError reports an invalid (N, t, q_bits) combination at
// Parameters construction. It is always fatal.
type ParameterError struct {
	Op  string
	Msg string
}

func (e *ParameterError) Error() string { return fmt.Sprintf("rlwe: %s: %s", e.Op, e.Msg) }

func paramErr(op, format string, args ...interface{}) error {
	return &ParameterError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KeyError reports that an operation requires a key which has not
// been generated. Fatal to the operation that raised it.
type KeyError struct {
	Op  string
	Msg string
}

func (e *KeyError) Error() string { return fmt.Sprintf("rlwe: %s: %s", e.Op, e.Msg) }

// NewKeyError constructs a KeyError; exported because schemes/bfv
// raises it too (encryptor/decryptor operate on keys defined here).
func NewKeyError(op, format string, args ...interface{}) error {
	return &KeyError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// ParameterMismatch reports that two ciphertexts (or keys) with
// different Parameters were combined. Fatal to the
// operation.
type ParameterMismatch struct {
	Op  string
	Msg string
}

func (e *ParameterMismatch) Error() string { return fmt.Sprintf("rlwe: %s: %s", e.Op, e.Msg) }

// NewParameterMismatch constructs a ParameterMismatch error.
func NewParameterMismatch(op, format string, args ...interface{}) error {
	return &ParameterMismatch{Op: op, Msg: fmt.Sprintf(format, args...)}
}
