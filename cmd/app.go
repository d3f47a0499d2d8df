package cmd

import (
	"github.com/gurisko/vm/internal/dispatch"
	"github.com/gurisko/vm/internal/logging"
	"github.com/gurisko/vm/internal/paths"
	"github.com/gurisko/vm/internal/registry"
	"github.com/gurisko/vm/internal/vagrant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app resolves settings from flags and VM_* environment variables and
// builds a Dispatcher per invocation.
type app struct {
	settings *viper.Viper
}

func newApp() *app {
	v := viper.New()
	v.SetEnvPrefix("VM")
	v.AutomaticEnv()
	return &app{settings: v}
}

func (a *app) bindFlags(rootCmd *cobra.Command) {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file path (env VM_CONFIG, default "+paths.DefaultConfigPath()+")")
	pf.Bool("verbose", false, "log debug detail to stderr (env VM_VERBOSE)")
	_ = a.settings.BindPFlag("config", pf.Lookup("config"))
	_ = a.settings.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = a.settings.BindEnv("vagrant")
}

func (a *app) configPath() string {
	if p := a.settings.GetString("config"); p != "" {
		return p
	}
	return paths.DefaultConfigPath()
}

func (a *app) newDispatcher(cmd *cobra.Command) (*dispatch.Dispatcher, error) {
	logger := logging.New(cmd.ErrOrStderr(), a.settings.GetBool("verbose"))
	configPath := a.configPath()

	reg, err := registry.LoadOrCreate(configPath)
	if err != nil {
		return nil, err
	}

	// VM_VAGRANT overrides the executable for this run only; it is never saved.
	vagrantPath := reg.VagrantPath
	if override := a.settings.GetString("vagrant"); override != "" {
		vagrantPath = override
	}
	runner := vagrant.NewExec(vagrantPath, logger)
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	logger.Debug("registry loaded", "config", configPath, "entries", reg.Len(), "vagrant", vagrantPath)

	return dispatch.New(dispatch.Config{
		ConfigPath: configPath,
		Runner:     runner,
		Confirmer:  dispatch.ByteConfirmer{R: cmd.InOrStdin()},
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Logger:     logger,
	}, reg), nil
}

// dispatch runs req and converts a failure or nonzero exit into an
// *exitError for run to report.
func (a *app) dispatch(cmd *cobra.Command, req dispatch.Request) error {
	d, err := a.newDispatcher(cmd)
	if err != nil {
		return &exitError{code: dispatch.ExitFailure, err: err}
	}
	code, err := d.Dispatch(cmd.Context(), req)
	if code == dispatch.ExitOK && err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}
