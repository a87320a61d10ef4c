package domain

// ModuleConfig is an immutable key→value configuration snapshot for a
// workspace module. Set returns a new instance; the receiver never changes.
type ModuleConfig struct {
	values map[string]string
}

// NewModuleConfig copies values into an immutable ModuleConfig.
func NewModuleConfig(values map[string]string) ModuleConfig {
	if len(values) == 0 {
		return ModuleConfig{}
	}
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return ModuleConfig{values: cp}
}

// Get returns the value for key and whether it is present.
func (c ModuleConfig) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Set returns a new ModuleConfig with key set to value.
func (c ModuleConfig) Set(key, value string) ModuleConfig {
	cp := make(map[string]string, len(c.values)+1)
	for k, v := range c.values {
		cp[k] = v
	}
	cp[key] = value
	return ModuleConfig{values: cp}
}

// Delete returns a new ModuleConfig without key.
func (c ModuleConfig) Delete(key string) ModuleConfig {
	if _, ok := c.values[key]; !ok {
		return c
	}
	cp := make(map[string]string, len(c.values)-1)
	for k, v := range c.values {
		if k != key {
			cp[k] = v
		}
	}
	return ModuleConfig{values: cp}
}

// Len returns the number of entries.
func (c ModuleConfig) Len() int { return len(c.values) }

// Equal reports structural equality of both configs.
func (c ModuleConfig) Equal(other ModuleConfig) bool {
	if len(c.values) != len(other.values) {
		return false
	}
	for k, v := range c.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the underlying map for persistence.
func (c ModuleConfig) Snapshot() map[string]string {
	if len(c.values) == 0 {
		return nil
	}
	cp := make(map[string]string, len(c.values))
	for k, v := range c.values {
		cp[k] = v
	}
	return cp
}
