package registry

// Entry is one named alias for a Vagrant project directory.
type Entry struct {
	Name string `yaml:"name" json:"name"` // Lookup key, unique within a Registry
	Path string `yaml:"path" json:"path"` // Absolute path to the directory holding the Vagrantfile
}

// fileData is the on-disk layout of config.toml.
type fileData struct {
	VagrantPath string            `toml:"vagrant_path"` // Executable name or path
	VMList      map[string]string `toml:"vm_list"`      // Map of entry name to absolute path
}
