package tsbuild

// noCopy is embedded (as a field, never embedded as a promoted method set)
// in Builder so that `go vet -copylocks` flags accidental copies of a live
// builder by value. The builder owns arenas addressed by stable integer
// ids; copying the struct would alias those arenas between two Builder
// values without either of them knowing, silently corrupting both.
//
// See https://golang.org/issues/8005#issuecomment-190753527 for the
// locking-checker trick this relies on.
type noCopy struct{}

// Lock and Unlock are no-ops; their only purpose is to make noCopy satisfy
// sync.Locker so `go vet`'s -copylocks analysis flags a struct containing
// one as non-copyable.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
