// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/local_cache.go -destination=local_cache_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/remote_store.go -destination=remote_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/store.go -destination=store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/queue.go -destination=queue_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/storage.go -destination=storage_mock.go -package=mocks
