package tenancy

import (
	"errors"
	"fmt"
)

// ErrPoolDraining is returned by Pool.Get while CloseAll is tearing the pool
// down. Once CloseAll returns, Get works again and re-provisions from scratch.
var ErrPoolDraining = errors.New("tenancy: pool is draining")

// ProvisionError reports a failure to prepare a tenant's namespace: a bad
// tenant id, DDL failure, or schema migration failure.
type ProvisionError struct {
	TenantID string
	Err      error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("tenancy: provision tenant %s: %v", e.TenantID, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// ConnectionError reports a failure to open or verify a tenant's connection
// handle after its namespace was provisioned.
type ConnectionError struct {
	TenantID  string
	Namespace string
	Err       error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("tenancy: connect tenant %s (%s): %v", e.TenantID, e.Namespace, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
