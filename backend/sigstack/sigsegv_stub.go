//go:build !linux || !cgo

package sigstack

// ReapplySigsegvOnstack is a no-op on platforms without the cgo SIGSEGV patch.
func ReapplySigsegvOnstack() error {
	return nil
}

// StartPatchLoop is a no-op on platforms without the cgo SIGSEGV patch.
func StartPatchLoop() {}
