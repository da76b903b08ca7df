package zeppelin

import "github.com/lostinentropy/zeppelin-core/internal/streamio"

// Progress is an optional observer that Encrypt and Decrypt invoke as bytes
// are processed. Total is -1 when the total size could not be determined
// up front (an encrypt source that isn't seekable beyond the single
// rewind this package itself performs).
type Progress = streamio.Progress
