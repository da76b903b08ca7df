package zeppelin

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Fixed member names for the .zep container format, named in the external
// interface contract: every archive carries exactly these three members
// (written in the order data, salt, meta), so readers never have to guess.
const (
	saltMember   = "salt.bin"
	metaMember   = "meta.json"
	dataMember   = "data.bin"
	containerExt = ".zep"
)

// containerEpoch pins every member's modification time, matching the
// original implementation's habit of zeroing timestamps so the archive
// does not record when it was written.
var containerEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// CreateContainer encrypts all of source under password and params and
// writes a self-contained .zep archive to path: a zip file holding the
// wrapped salt, the params document, and the ciphertext body as three
// separate members. On any error, including a cancelled ctx, the
// partially-written file at path is removed rather than left behind for a
// caller to mistake for a complete container.
func CreateContainer(ctx context.Context, path string, password []byte, source io.ReadSeeker, params CryptSettings, prog Progress) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "zeppelin: creating container")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			_ = os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	defer func() {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}()

	dataWriter, err := createMember(zw, dataMember)
	if err != nil {
		return err
	}

	wrappedSalt, paramsDoc, err := Encrypt(ctx, password, source, dataWriter, params, prog)
	if err != nil {
		return err
	}

	saltWriter, err := createMember(zw, saltMember)
	if err != nil {
		return err
	}

	if _, err := saltWriter.Write(wrappedSalt[:]); err != nil {
		return errors.Wrap(err, "zeppelin: writing salt member")
	}

	metaWriter, err := createMember(zw, metaMember)
	if err != nil {
		return err
	}

	if _, err := metaWriter.Write(paramsDoc); err != nil {
		return errors.Wrap(err, "zeppelin: writing meta member")
	}

	return nil
}

func createMember(zw *zip.Writer, name string) (io.Writer, error) {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: containerEpoch,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "zeppelin: creating %s member", name)
	}

	return w, nil
}

// OpenContainer decrypts the .zep archive at path under password, writing
// the recovered plaintext to sink. As with Decrypt, an ErrAuthenticationFailed
// result still means some plaintext may have already reached sink; callers
// must discard it.
func OpenContainer(ctx context.Context, path string, password []byte, sink io.Writer, prog Progress) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return errors.Wrap(err, "zeppelin: opening container")
	}
	defer zr.Close()

	wrappedSalt, err := readMember(&zr.Reader, saltMember)
	if err != nil {
		return err
	}

	if len(wrappedSalt) != SaltSize {
		return errors.Wrap(ErrMalformed, "zeppelin: salt member has the wrong length")
	}

	var salt [SaltSize]byte
	copy(salt[:], wrappedSalt)

	paramsDoc, err := readMember(&zr.Reader, metaMember)
	if err != nil {
		return err
	}

	source, err := newZipRewinder(&zr.Reader, dataMember)
	if err != nil {
		return err
	}

	return Decrypt(ctx, password, salt, paramsDoc, source, sink, prog)
}

func readMember(zr *zip.Reader, name string) ([]byte, error) {
	rc, err := zr.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "zeppelin: opening %s member", name)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "zeppelin: reading %s member", name)
	}

	return b, nil
}

// zipRewinder adapts a single zip archive member into an io.ReadSeeker that
// supports exactly the "rewind to start" operation the two-pass decryption
// protocol needs, by reopening a fresh reader onto the same member - zip
// directory entries don't support arbitrary seeking, but independent reopens
// of the same member are cheap and exactly equivalent to a rewind.
type zipRewinder struct {
	zr   *zip.Reader
	name string
	rc   io.ReadCloser
}

func newZipRewinder(zr *zip.Reader, name string) (*zipRewinder, error) {
	z := &zipRewinder{zr: zr, name: name}
	if err := z.reopen(); err != nil {
		return nil, err
	}

	return z, nil
}

func (z *zipRewinder) reopen() error {
	if z.rc != nil {
		_ = z.rc.Close()
	}

	rc, err := z.zr.Open(z.name)
	if err != nil {
		return errors.Wrapf(err, "zeppelin: reopening %s member", z.name)
	}

	z.rc = rc

	return nil
}

func (z *zipRewinder) Read(p []byte) (int, error) {
	return z.rc.Read(p)
}

func (z *zipRewinder) Seek(offset int64, whence int) (int64, error) {
	if offset != 0 || whence != io.SeekStart {
		return 0, errors.New("zeppelin: container sources only support rewinding to the start")
	}

	return 0, z.reopen()
}
