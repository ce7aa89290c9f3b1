package storage

import "context"

// Store is the file storage contract of the pipeline: named disks holding
// files under relative paths. The local implementation backs development and
// single-node deployments; anything object-store shaped can slot in behind
// this interface.
type Store interface {
	Write(ctx context.Context, disk, path string, data []byte) error
	Read(ctx context.Context, disk, path string) ([]byte, error)
}

// DiskUploads is where original document files live.
const DiskUploads = "uploads"
