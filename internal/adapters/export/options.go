package export

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(e *Exporter) {
		if width > 0 && height > 0 {
			e.width, e.height = width, height
		}
	}
}
