//go:build !windows

package native

// LoadSystemLibrary resolves the vendor SDK from the system search path.
// The SDK only ships for Windows; on other platforms the control-plane
// backend is the one to use.
func LoadSystemLibrary() (Library, error) {
	return nil, ErrSDKUnavailable
}
