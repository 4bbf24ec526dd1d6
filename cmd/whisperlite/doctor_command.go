package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whisperlite/internal/deps"
	"whisperlite/internal/services"
	"whisperlite/internal/transcribe"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the transcription engine dependencies are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check(deps.Engine(cfg.Model.PythonBinary))

			rows := make([][]string, 0, len(statuses)+1)
			missing := false
			for _, st := range statuses {
				state := "ok"
				detail := st.Description
				if !st.Available {
					state = "missing"
					detail = st.Detail
					if !st.Optional {
						missing = true
					}
				}
				rows = append(rows, []string{st.Name, state, detail})
			}

			if dir, ok := transcribe.LocalModelDir(cfg.Model.LocalModelRoot, cfg.Model.Name); ok {
				rows = append(rows, []string{"Bundled model", "ok", dir})
			} else {
				rows = append(rows, []string{"Bundled model", "absent", "model will be downloaded on first run"})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Dependency", "State", "Detail"}, rows, nil))

			if missing {
				return services.Wrap(services.ErrConfiguration, "cli", "doctor",
					"required engine dependencies are missing", nil)
			}
			return nil
		},
	}
}
