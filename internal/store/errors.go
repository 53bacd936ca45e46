package store

import (
	"fmt"
)

type UnknownCollectionError struct {
	Collection string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("Unknown collection %s", e.Collection)
}

type RecordNotFoundError struct {
	Collection string
	ID         string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("Record %s not found in %s", e.ID, e.Collection)
}

type DuplicateRecordError struct {
	Collection string
	ID         string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("Record %s already exists in %s", e.ID, e.Collection)
}
