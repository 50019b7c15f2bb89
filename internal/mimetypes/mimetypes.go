// Package mimetypes infers MIME content types for resolved resources.
//
// The extension table is fixed and does not consult the host's mime.types
// files, so the same name maps to the same type on every platform.
package mimetypes

import (
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Default is returned for names whose extension is unknown.
const Default = "application/octet-stream"

// byExtension maps lowercase extensions, without the dot, to content types.
var byExtension = map[string]string{
	// text
	"htm":  "text/html",
	"html": "text/html",
	"txt":  "text/plain",
	"text": "text/plain",
	"css":  "text/css",
	"csv":  "text/csv",
	"md":   "text/markdown",
	"ics":  "text/calendar",
	"vcf":  "text/vcard",
	"xml":  "text/xml",
	"rtf":  "application/rtf",
	"json": "application/json",
	"js":   "text/javascript",

	// images
	"png":  "image/png",
	"gif":  "image/gif",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"jpe":  "image/jpeg",
	"bmp":  "image/bmp",
	"ico":  "image/vnd.microsoft.icon",
	"svg":  "image/svg+xml",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"ief":  "image/ief",

	// documents and archives
	"pdf":  "application/pdf",
	"ps":   "application/postscript",
	"eps":  "application/postscript",
	"ai":   "application/postscript",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"odt":  "application/vnd.oasis.opendocument.text",
	"zip":  "application/zip",
	"gz":   "application/gzip",
	"tar":  "application/x-tar",
	"7z":   "application/x-7z-compressed",
	"tex":  "application/x-tex",
	"eml":  "message/rfc822",

	// audio and video
	"au":   "audio/basic",
	"snd":  "audio/basic",
	"aif":  "audio/x-aiff",
	"aiff": "audio/x-aiff",
	"wav":  "audio/x-wav",
	"mp3":  "audio/mpeg",
	"ogg":  "audio/ogg",
	"mpg":  "video/mpeg",
	"mpeg": "video/mpeg",
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"qt":   "video/quicktime",
	"webm": "video/webm",
	"avi":  "video/x-msvideo",
}

// TypeByExtension returns the content type for the extension of name.
// Query strings and fragments are not stripped; callers pass a path.
// Unknown or missing extensions yield Default.
func TypeByExtension(name string) string {
	if t, ok := Lookup(name); ok {
		return t
	}

	return Default
}

// Lookup returns the content type for the extension of name and whether
// the extension is known.
func Lookup(name string) (string, bool) {
	ext := path.Ext(name)
	if ext == "" || ext == "." {
		return "", false
	}

	t, ok := byExtension[strings.ToLower(ext[1:])]

	return t, ok
}

// Detect returns the content type for name, falling back to sniffing data
// when sniff is true and the extension is unknown.
func Detect(name string, data []byte, sniff bool) string {
	if t, ok := Lookup(name); ok {
		return t
	}

	if sniff && len(data) > 0 {
		return mimetype.Detect(data).String()
	}

	return Default
}
