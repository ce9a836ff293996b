package expand

import "fmt"

// InvalidArgumentError reports a missing or empty required generator input.
// Generators and expanders validate eagerly and never build partial trees.
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

// ConfigError reports a configuration the engine cannot expand, such as an
// enumerator type that fits none of the disposal classes or a flag count
// beyond the representable range.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "unsupported configuration: " + e.Reason
}
