package cloud

// Metadata holds live instance information in a provider-agnostic form.
// Empty fields mean the provider did not report a value.
type Metadata struct {
	InstanceType string
	State        string
}
