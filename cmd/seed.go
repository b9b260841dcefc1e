package main

import (
	"fmt"
	"os"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/Shivanand-hulikatti/hackhub/internal/logging"
	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/Shivanand-hulikatti/hackhub/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout read by the seed command:
//
//	hackathons:
//	  - title: Code for Good
//	    startDate: 2026-07-01T09:00:00Z
//	    ...
type seedFile struct {
	Hackathons []model.CreateHackathonRequest `yaml:"hackathons"`
}

type seedOptions struct {
	file      string
	organizer string
	approve   bool
}

func (o *seedOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.file, "file", "f", "", "YAML file with hackathons to create (required)")
	fs.StringVar(&o.organizer, "organizer", "seed-organizer", "user id recorded as organizer")
	fs.BoolVar(&o.approve, "approve", false, "approve the created hackathons")
}

func readSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &sf, nil
}

func newSeedCmd(load loader) *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create hackathons from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger, err := logging.Setup(cfg.Log)
			if err != nil {
				return err
			}
			sf, err := readSeedFile(opts.file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := openStores(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer st.close()

			svc := service.NewHackathonService(st.hackathons, clockwork.NewRealClock(), logger, cfg.Registration.MaxAttempts)
			organizer := identity.Principal{UserID: opts.organizer, Role: identity.RoleOrganizer}
			moderator := identity.Principal{UserID: "seed", Role: identity.RoleAdmin}

			for i, req := range sf.Hackathons {
				h, err := svc.CreateHackathon(ctx, organizer, req)
				if err != nil {
					return fmt.Errorf("hackathon %d (%q): %w", i, req.Title, err)
				}
				if opts.approve {
					if _, err := svc.ApproveHackathon(ctx, moderator, h.ID); err != nil {
						return fmt.Errorf("approve %s: %w", h.ID, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", h.ID, h.Title)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d hackathons\n", len(sf.Hackathons))
			return nil
		},
	}
	opts.addFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
