package services

// defaultTasksByService seeds a fresh case with the firm's standard
// checklist for that service when the request doesn't carry its own
// tasks array.
var defaultTasksByService = map[string][]string{
	"GST Filing": {
		"Collect sales invoices",
		"Collect purchase invoices",
		"Reconcile input credits",
	},
	"ITR Filing": {
		"Collect Form 16",
		"Collect investment proofs",
		"Prepare computation sheet",
	},
}

// DefaultTasksForService returns the checklist titles for a service.
// Unknown services get a single generic collection task.
func DefaultTasksForService(service string) []string {
	if titles, ok := defaultTasksByService[service]; ok {
		return titles
	}
	return []string{"Collect required documents"}
}
