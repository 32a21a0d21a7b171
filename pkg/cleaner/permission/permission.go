// Package permission defines the narrow boundary to the host's
// permission-grant mechanism. The engine only ever asks two questions;
// prompting UX lives entirely outside this module.
package permission

// Provider answers whether the process may read the protected scan
// roots, and can trigger a grant request.
type Provider interface {
	// HasPermission reports whether access is currently granted.
	HasPermission() bool

	// RequestPermission asks the host to grant access and reports
	// whether the grant succeeded.
	RequestPermission() bool
}

// Static is a fixed-answer Provider for hosts without a permission
// system, and for tests.
type Static struct {
	// Granted is the answer to both questions.
	Granted bool
}

// HasPermission implements Provider.
func (s Static) HasPermission() bool { return s.Granted }

// RequestPermission implements Provider.
func (s Static) RequestPermission() bool { return s.Granted }
