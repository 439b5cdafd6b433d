// file: pkg/nachosfs/semaphore.go

package nachosfs

// semaphore is a classic counting semaphore built on a buffered channel,
// the idiomatic Go stand-in for the source's Semaphore::P/Semaphore::V.
// A semaphore initialized with one token behaves as a binary mutex; this
// is how the open-file node's canRead/canWrite coordination is built.
type semaphore chan struct{}

// newSemaphore returns a semaphore initialized with n tokens.
func newSemaphore(n int) semaphore {
	s := make(semaphore, n)
	for i := 0; i < n; i++ {
		s <- struct{}{}
	}
	return s
}

// P acquires a token, blocking until one is available.
func (s semaphore) P() {
	<-s
}

// V releases a token.
func (s semaphore) V() {
	s <- struct{}{}
}
