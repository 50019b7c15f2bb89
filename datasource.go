// Package datasource resolves resource locations into in-memory content
// handles suitable for email attachments and inline parts.
//
// A resource location is a base-relative path ("images/logo.png"), an
// absolute URL ("https://cdn.example.com/logo.png"), or a content-id
// reference ("cid:logo"). A Resolver turns a location into a *DataSource
// holding the bytes and an inferred MIME type.
//
// Basic usage:
//
//	r := datasource.NewClassPathResolver("/attachments")
//	ds, err := r.Resolve(ctx, "logo.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if ds != nil {
//	    fmt.Println(ds.ContentType(), ds.Size())
//	}
//
// # Leniency
//
// Every resolver carries a leniency flag. In strict mode (the default) a
// missing target yields a *NotFoundError and any other I/O failure yields a
// *ReadError. In lenient mode both collapse to a nil *DataSource and a nil
// error, so callers assembling optional attachments can skip what is
// missing. ResolveWith overrides the flag for a single call.
//
// Leniency never hides the caller's context. When ctx is canceled or its
// deadline expires, the context error is returned in either mode.
//
// The classpath and file resolvers never resolve "cid:" or http(s)
// locations. They return (nil, nil) for them in either mode; those
// locations belong to another stage of message composition.
package datasource

import (
	"bytes"
	"io"
)

// DataSource is resolved content: the bytes of a resource and its MIME type.
// A DataSource is immutable and owned by the caller once returned.
type DataSource struct {
	name        string
	contentType string
	data        []byte
}

func newDataSource(name, contentType string, data []byte) *DataSource {
	return &DataSource{
		name:        name,
		contentType: contentType,
		data:        data,
	}
}

// Name returns the base name of the resolved location, e.g. "logo.png".
func (d *DataSource) Name() string {
	return d.name
}

// ContentType returns the MIME type, e.g. "image/png".
func (d *DataSource) ContentType() string {
	return d.contentType
}

// Size returns the content length in bytes.
func (d *DataSource) Size() int {
	return len(d.data)
}

// Bytes returns a copy of the content.
func (d *DataSource) Bytes() []byte {
	return bytes.Clone(d.data)
}

// Reader returns a reader over the content.
func (d *DataSource) Reader() io.Reader {
	return bytes.NewReader(d.data)
}

// WriteTo writes the content to w.
func (d *DataSource) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)

	return int64(n), err
}
