package dispatch

// Request is one parsed invocation of the tool.
type Request interface {
	request()
}

// List prints every entry, sorted by name.
type List struct {
	Format string // "", "json" or "yaml"
}

// Add registers Name for the directory Path.
type Add struct {
	Name string
	Path string
}

// Remove deletes Name, prompting first unless Force is set.
type Remove struct {
	Name  string
	Force bool
}

// BackupConfig copies the config file to a timestamped sibling.
type BackupConfig struct{}

// FindVagrantfiles prints every Vagrantfile below BasePath.
type FindVagrantfiles struct {
	BasePath string
}

// ConfigFilePath prints the location of the config file.
type ConfigFilePath struct{}

// RunVagrant runs `vagrant <Command> <Options...>` in Name's directory.
type RunVagrant struct {
	Name    string
	Command string
	Options []string
}

// RawVagrant runs `vagrant <Options...>` in Name's directory.
type RawVagrant struct {
	Name    string
	Options []string
}

// GlobalVagrant runs `vagrant <Options...>` in the current directory.
type GlobalVagrant struct {
	Options []string
}

func (List) request()             {}
func (Add) request()              {}
func (Remove) request()           {}
func (BackupConfig) request()     {}
func (FindVagrantfiles) request() {}
func (ConfigFilePath) request()   {}
func (RunVagrant) request()       {}
func (RawVagrant) request()       {}
func (GlobalVagrant) request()    {}
