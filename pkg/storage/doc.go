/*
Package storage provides the storage abstraction behind the local intake.

# Storage Interface

The intake only needs to keep what it accepted for inspection:

	type Storage interface {
	    Write(ctx context.Context, sub Submission) error
	    Submissions(ctx context.Context) ([]Submission, error)
	    Query(ctx context.Context, req QueryRequest) ([]metrics.Series, error)
	    Stats(ctx context.Context) (*Stats, error)
	    Close() error
	}

A Submission is stored as a unit, mirroring the all-or-nothing contract of the
exporter: a batch is either fully visible or absent.

# Backends

  - memory: in-process storage, lost on restart

The intake is a development and test tool, so nothing is persisted between
runs.
*/
package storage
