package ports

import "context"

// Partition names one of the persisted state blobs.
type Partition string

// The four persisted partitions.
const (
	PartitionCollections Partition = "collections"
	PartitionAccount     Partition = "account"
	PartitionHistory     Partition = "history"
	PartitionCategories  Partition = "categories"
)

// Partitions lists every partition in flush order.
var Partitions = []Partition{
	PartitionCollections,
	PartitionAccount,
	PartitionHistory,
	PartitionCategories,
}

// BlobStore persists opaque serialized blobs by partition name.
// It performs no interpretation of the bytes it stores.
type BlobStore interface {
	HealthChecker

	// Load returns the stored blob.
	// Returns domain.ErrNotFound if the partition has never been saved.
	Load(ctx context.Context, p Partition) ([]byte, error)

	// Save replaces the stored blob.
	Save(ctx context.Context, p Partition, data []byte) error

	// Close releases the underlying medium.
	Close() error
}
