package core

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ownersMu sync.Mutex
	owners   = map[uuid.UUID]interface{}{}
)

// IdentifierAcquireNewID hands out a fresh identifier and remembers its owner
// until IdentifierReleaseID is called.
func IdentifierAcquireNewID(owner interface{}) uuid.UUID {
	ownersMu.Lock()
	defer ownersMu.Unlock()

	id := uuid.New()
	for _, taken := owners[id]; taken; _, taken = owners[id] {
		id = uuid.New()
	}
	owners[id] = owner
	return id
}

// IdentifierOwner returns the owner registered for id.
func IdentifierOwner(id uuid.UUID) (interface{}, bool) {
	ownersMu.Lock()
	defer ownersMu.Unlock()

	o, ok := owners[id]
	return o, ok
}

func IdentifierReleaseID(id uuid.UUID) error {
	ownersMu.Lock()
	defer ownersMu.Unlock()

	if _, ok := owners[id]; !ok {
		return fmt.Errorf("identifier_release_id: id '%s' is not owned. Nothing was done", id)
	}
	delete(owners, id)
	return nil
}
