package proc

import (
	"io"
	"os"
	"sync"
)

// lockedWriter serializes writes from several output copiers.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// listCloser closes every element, returning the last error.
type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// fileWriter returns a file the child can write to that ends up in w.
//
// Files are handed over as is. Other writers get a pipe whose read end is
// drained into w by a goroutine tracked by wg; the returned file is the
// write end and must be closed by the parent once the child started.
func fileWriter(w io.Writer, mu *sync.Mutex, nullDevice string, wg *sync.WaitGroup) (*os.File, bool, error) {
	switch w := w.(type) {
	case *os.File:
		return w, false, nil
	case nil:
		f, err := os.OpenFile(nullDevice, os.O_WRONLY, 0)
		return f, true, err
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, false, err
	}

	dst := &lockedWriter{mu: mu, w: w}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(dst, pr)
		pr.Close()
	}()

	return pw, true, nil
}
