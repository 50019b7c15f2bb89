package datasource

import "github.com/spf13/afero"

// DefaultFs is the filesystem used by resolvers and config loading when no
// WithFs or WithFS option is given. It defaults to the OS filesystem but can
// be overridden for testing.
//
// Example usage for testing:
//
//	func TestAttachments(t *testing.T) {
//	    memFs := afero.NewMemMapFs()
//	    afero.WriteFile(memFs, "/attachments/logo.png", png, 0644)
//	    datasource.SetDefaultFs(memFs)
//	    defer datasource.ResetDefaultFs()
//	    // ... test code ...
//	}
//
// Resolvers capture DefaultFs when they are constructed; changing it later
// does not affect existing resolvers.
var DefaultFs afero.Fs = afero.NewOsFs()

// SetDefaultFs sets the global default filesystem.
//
// WARNING: This modifies global state and is NOT thread-safe.
// Do not use with t.Parallel() tests. For concurrent tests,
// use WithFs() on individual resolvers instead.
func SetDefaultFs(fs afero.Fs) {
	DefaultFs = fs
}

// ResetDefaultFs resets the global filesystem to the OS filesystem.
func ResetDefaultFs() {
	DefaultFs = afero.NewOsFs()
}
