package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/internal/config"
)

func newBackendsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "Show backends, default models and credential status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BACKEND\tDEFAULT MODEL\tCREDENTIAL\tSTATUS")
			for _, name := range a.registry.Names() {
				spec := llmprovider.GetBackendSpec(llmprovider.ProviderID(name))
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, spec.DefaultModel, credentialVars(spec), a.backendStatus(spec))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(a.stdout, "\nUser config: %s\n", config.GetUserConfigPath())
			return err
		},
	}
}

func credentialVars(spec *llmprovider.BackendSpec) string {
	if !spec.RequiresCredential() {
		return "-"
	}
	return strings.Join(spec.CredentialEnv, " | ")
}

func (a *app) backendStatus(spec *llmprovider.BackendSpec) string {
	disabled := slices.ContainsFunc(a.cfg.Backends.Disabled, func(d string) bool {
		return strings.EqualFold(strings.TrimSpace(d), spec.Name)
	})
	switch {
	case disabled:
		return color.New(color.FgRed).Sprint("disabled")
	case !spec.RequiresCredential():
		return color.New(color.FgGreen).Sprint("ready")
	}

	source := spec.CredentialSource()
	if source == "" {
		return color.New(color.FgYellow).Sprint("missing")
	}
	return color.New(color.FgGreen).Sprintf("%s=%s", source, config.MaskAPIKey(os.Getenv(source)))
}
