package presenter

import (
	"context"
	"sync"

	"github.com/openvta/van-terminal-api/internal/models"
)

type operatorSource interface {
	List(ctx context.Context) ([]models.Operator, error)
}

type vanSource interface {
	List(ctx context.Context) ([]models.Van, error)
}

type assignmentSource interface {
	List(ctx context.Context) ([]models.Assignment, error)
}

// Snapshot is the presenter's transient copy of the three source lists. It is
// never authoritative; every mutation is followed by a fresh Load.
type Snapshot struct {
	Operators   []models.Operator
	Vans        []models.Van
	Assignments []models.Assignment
}

// Load fetches operators, vans and assignments concurrently. The three
// fetches are not isolated from each other: if any one fails the whole load
// fails and no partial snapshot is returned.
func Load(ctx context.Context, operators operatorSource, vans vanSource, assignments assignmentSource) (*Snapshot, error) {
	snap := &Snapshot{}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		list, err := operators.List(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.Operators = list
	}()
	go func() {
		defer wg.Done()
		list, err := vans.List(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.Vans = list
	}()
	go func() {
		defer wg.Done()
		list, err := assignments.List(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.Assignments = list
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return snap, nil
}
