// Package cleaner defines the interface shared by HTML cleaners.
package cleaner

// Cleaner transforms HTML content into a cleaner form.
type Cleaner interface {
	// Clean transforms the input HTML. On failure it returns "" and an error.
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
