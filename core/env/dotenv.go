package env

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
)

// LoadFile preloads the variables defined in a dotenv file. A missing file is
// not an error.
func LoadFile(fs afero.Fs, dst *Store, path string, rejected func(error)) error {
	src, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WithStack(err)
	}
	defer src.Close()

	return LoadReader(dst, src, rejected)
}

// LoadReader preloads the variables from dotenv formatted input. Entries go
// through Set in name order, so the reserved name, empty values and entries
// past capacity are refused exactly as assignment lines are: they're skipped
// and handed to rejected, which may be nil. Only malformed input is an error.
func LoadReader(dst *Store, r io.Reader, rejected func(error)) error {
	parsed, err := gotenv.StrictParse(r)
	if err != nil {
		return errors.Wrap(err, "parsing dotenv")
	}

	names := make([]string, 0, len(parsed))
	for k := range parsed {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := dst.Set(name, parsed[name]); err != nil && rejected != nil {
			rejected(err)
		}
	}

	return nil
}
