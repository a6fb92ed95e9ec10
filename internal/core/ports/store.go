package ports

// OutputStore persists compiled assets.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type OutputStore interface {
	// Put writes data to path, creating parent directories as needed.
	Put(path string, data []byte) error
}
