package commands

import (
	"fmt"

	"github.com/opendataloader-project/odlsite/internal/config"
)

// InitCmd writes an example configuration.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	return RunInit(root.Config, i.Force)
}

// RunInit writes the default configuration to configPath. Secrets are left as
// ${VAR} references.
func RunInit(configPath string, force bool) error {
	if err := config.Init(configPath, force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", configPath)
	fmt.Println("Set RESEND_API_KEY to enable the contact form, then run: odlsite serve -c", configPath)
	return nil
}
