package archive

import "errors"

var (
	errNoFileCount        = errors.New("archive: file count at offset 0 is not sane")
	errUnrecognizedFormat = errors.New("archive: no known index layout (v1/v2/v3) validated")
)
