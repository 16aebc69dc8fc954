// errors.go — Typed failures for style loading and lookup.
package style

import "fmt"

// UnknownStyleError reports a lookup for an id not present in the registry.
type UnknownStyleError struct {
	ID string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("unknown style %q", e.ID)
}

// AssetError reports a missing or malformed bundled style asset.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("style asset %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("style asset %s", e.Path)
}

func (e *AssetError) Unwrap() error { return e.Err }
