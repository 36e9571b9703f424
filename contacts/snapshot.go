package contacts

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/ugorji/go/codec"
	"go.uber.org/multierr"
)

// snapshot layout: magic | version | gzip(msgpack([]entry))
var snapshotMagic = []byte("ABK")

type snapshotVersion byte

const snapshotVersion1 snapshotVersion = 1

var (
	ErrSnapshotFormat  = errors.New("not an address book snapshot")
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)

// entry is the persisted shape of a [Record], shared by snapshots and YAML.
type entry struct {
	Name     string   `codec:"name"               yaml:"name"`
	Phones   []string `codec:"phones,omitempty"   yaml:"phones,omitempty"`
	Birthday string   `codec:"birthday,omitempty" yaml:"birthday,omitempty"`
}

func (b *AddressBook) entries() []entry {
	es := make([]entry, 0, b.Len())
	for name, r := range b.All() {
		e := entry{Name: name}
		for _, p := range r.phones {
			e.Phones = append(e.Phones, p.Value())
		}
		if r.birthday != nil {
			e.Birthday = r.birthday.String()
		}
		es = append(es, e)
	}
	return es
}

// recordsFrom validates every entry through the field constructors.
func recordsFrom(es []entry) (map[string]*Record, []string, error) {
	records := make(map[string]*Record, len(es))
	keys := make([]string, 0, len(es))
	for _, e := range es {
		r := NewRecord(e.Name)
		for _, p := range e.Phones {
			if err := r.AddPhone(p); err != nil {
				return nil, nil, fmt.Errorf("record %q: %w", e.Name, err)
			}
		}
		if e.Birthday != "" {
			if err := r.AddBirthday(e.Birthday); err != nil {
				return nil, nil, fmt.Errorf("record %q: %w", e.Name, err)
			}
		}
		if _, ok := records[e.Name]; !ok {
			keys = append(keys, e.Name)
		}
		records[e.Name] = r
	}
	return records, keys, nil
}

// WriteSnapshot encodes the whole book to w.
func (b *AddressBook) WriteSnapshot(w io.Writer) error {
	header := append(bytes.Clone(snapshotMagic), byte(snapshotVersion1))
	if _, err := w.Write(header); err != nil {
		return err
	}

	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	var mh codec.MsgpackHandle
	err = codec.NewEncoder(zw, &mh).Encode(b.entries())
	return multierr.Append(err, zw.Close())
}

// ReadSnapshot replaces the book's records with those decoded from r.
// On error the book is left unchanged.
func (b *AddressBook) ReadSnapshot(r io.Reader) error {
	header := make([]byte, len(snapshotMagic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotFormat, err)
	}
	if !bytes.Equal(header[:len(snapshotMagic)], snapshotMagic) {
		return ErrSnapshotFormat
	}
	if v := snapshotVersion(header[len(snapshotMagic)]); v != snapshotVersion1 {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, v)
	}

	zr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotFormat, err)
	}
	defer zr.Close()

	var (
		mh codec.MsgpackHandle
		es []entry
	)
	raw, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotFormat, err)
	}
	if err := codec.NewDecoderBytes(raw, &mh).Decode(&es); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotFormat, err)
	}
	records, keys, err := recordsFrom(es)
	if err != nil {
		return err
	}
	b.records, b.keys = records, keys
	return nil
}

// SaveToFile writes a snapshot to path, replacing any existing file.
func (b *AddressBook) SaveToFile(path string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	err = b.WriteSnapshot(w)
	if err == nil {
		err = w.Flush()
	}
	err = multierr.Append(err, f.Close())
	if err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// LoadFromFile replaces the book's records with the snapshot at path.
// A missing file is logged and leaves the book unchanged.
func (b *AddressBook) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		b.logger.Warn("snapshot not found, starting with current records", "path", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	return b.ReadSnapshot(bufio.NewReader(f))
}
