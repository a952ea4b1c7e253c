package log

// Canonical field name constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Store fields
	FieldSchema = "schema"
	FieldFile   = "file"
	FieldKeys   = "keys"
	FieldBytes  = "bytes"
)
