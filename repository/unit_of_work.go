package repository

import (
	"context"
	"database/sql"
	"fmt"

	"harvester/database"
	"harvester/events"
	"harvester/service"
)

// unitOfWork implements the service.UnitOfWork interface over a single
// SQLite transaction
type unitOfWork struct {
	db                *database.DB
	tx                *sql.Tx
	transactionalBus  *events.TransactionalBus
	summonerRepo      service.SummonerRepository
	collectionRunRepo service.CollectionRunRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx

	// Create repositories with the transaction
	u.summonerRepo = newSummonerRepositoryWithTx(tx)
	u.collectionRunRepo = newCollectionRunRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(context.Background())
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback()
	if err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// SummonerRepository returns the summoner repository for this unit of work
func (u *unitOfWork) SummonerRepository() service.SummonerRepository {
	if u.summonerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.summonerRepo
}

// CollectionRunRepository returns the run repository for this unit of work
func (u *unitOfWork) CollectionRunRepository() service.CollectionRunRepository {
	if u.collectionRunRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.collectionRunRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
