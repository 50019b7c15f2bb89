// Package classify classifies resource location strings.
//
// A location is one of three disjoint classes: a content-id reference
// ("cid:logo"), an absolute HTTP(S) URL, or anything else, which callers
// treat as a path. The functions here are total and never fail.
package classify

import (
	"net/url"
	"strings"
)

const (
	cidScheme  = "cid:"
	fileScheme = "file"
)

// IsCID reports whether location is a content-id reference.
// The scheme comparison is case-insensitive.
func IsCID(location string) bool {
	return len(location) >= len(cidScheme) && strings.EqualFold(location[:len(cidScheme)], cidScheme)
}

// IsHTTPURL reports whether location parses as an absolute URL with the
// http or https scheme. A host is not required: "http:logo.png" is an
// HTTP URL too.
func IsHTTPURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)

	return scheme == "http" || scheme == "https"
}

// IsFileURL reports whether location parses as a file URL.
func IsFileURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}

	return strings.EqualFold(u.Scheme, fileScheme)
}

// Class is the derived class of a location.
type Class int

const (
	// Path is any location that is neither a CID reference nor an HTTP URL.
	Path Class = iota
	// CID is a content-id reference.
	CID
	// HTTP is an absolute http or https URL.
	HTTP
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case CID:
		return "cid"
	case HTTP:
		return "http"
	default:
		return "path"
	}
}

// Location returns the class of location.
func Location(location string) Class {
	switch {
	case IsCID(location):
		return CID
	case IsHTTPURL(location):
		return HTTP
	default:
		return Path
	}
}
