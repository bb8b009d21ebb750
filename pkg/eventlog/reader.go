package eventlog

import (
	"encoding/json"

	"github.com/galecloud/gale/pkg/utils"
	"github.com/klauspost/compress/zstd"
)

// Reader decodes the events of one journal.
type Reader struct {
	file    utils.File
	zstd    *zstd.Decoder
	decoder *json.Decoder
}

func newReader(file utils.File) (*Reader, error) {
	decoder, err := zstd.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Reader{
		file:    file,
		zstd:    decoder,
		decoder: json.NewDecoder(decoder),
	}, nil
}

// ReadEvent returns the next event, or io.EOF at the end of the journal.
func (r *Reader) ReadEvent() (*Event, error) {
	event := &Event{}
	if err := r.decoder.Decode(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *Reader) Close() error {
	r.zstd.Close()
	return r.file.Close()
}
