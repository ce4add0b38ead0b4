package vfs

// must contain only metadata (filename) as long as possible
// (before List/GetElement/ReadAll calls)
type Element interface {
	Init(parent Directory)
	Name() string
	IsDirectory() bool
}

type File interface {
	Element
	Size() int64
	ReadAll() ([]byte, error)
}

type Directory interface {
	Element
	List() ([]string, error)
	GetElement(name string) (Element, error)
}
