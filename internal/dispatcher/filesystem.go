package dispatcher

import (
	"io"
	"io/fs"
	"os"
)

// File is a sequentially read file.
type File interface {
	io.ReadCloser
	Stat() (fs.FileInfo, error)
}

// Filesystem is everything the dispatcher needs from the disk.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (File, error)
}

// OS is the Filesystem backed by the operating system.
type OS struct{}

func (OS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OS) Open(name string) (File, error) {
	return os.Open(name)
}
