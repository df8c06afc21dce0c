package schedule

import "context"

// Repository is the persistence collaborator: the machine list, the record
// list, and create/update/delete of single records.
type Repository interface {
	// ListMachines returns every machine known to the factory.
	ListMachines(ctx context.Context) ([]Machine, error)

	// ListRecords returns every work-order and machine-status record.
	ListRecords(ctx context.Context) ([]Record, error)

	// CreateRecord stores a new record and returns it as saved.
	CreateRecord(ctx context.Context, rec Record) (Record, error)

	// UpdateRecord replaces the record with id and returns it as saved.
	// Returns ErrItemNotFound if no record has that id.
	UpdateRecord(ctx context.Context, id string, rec Record) (Record, error)

	// DeleteRecord removes the record with id.
	// Returns ErrItemNotFound if no record has that id.
	DeleteRecord(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}

// MachineWriter is implemented by stores that can be seeded with machines.
type MachineWriter interface {
	UpsertMachines(ctx context.Context, machines []Machine) error
}
