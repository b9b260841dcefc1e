package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/jonboulle/clockwork"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := runCmd(t, "token", "--user", "alice", "--role", "organizer")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	resolver := identity.NewJWTResolver("cli-secret", "hackhub", clockwork.NewRealClock())
	p, err := resolver.Resolve(context.Background(), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.UserID != "alice" || p.Role != identity.RoleOrganizer {
		t.Errorf("principal = %+v", p)
	}
}

func TestTokenCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		args   []string
	}{
		{"no secret", "", []string{"token", "--user", "alice"}},
		{"bad role", "s", []string{"token", "--user", "alice", "--role", "judge"}},
		{"no user", "s", []string{"token"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			if _, err := runCmd(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSeedCommand(t *testing.T) {
	t.Setenv("HACKHUB_DATABASE_DRIVER", "memory")
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	data := `hackathons:
  - title: Code for Good
    description: Civic tech weekend
    startDate: 2030-07-10T09:00:00Z
    endDate: 2030-07-12T18:00:00Z
    registrationDeadline: 2030-07-01T23:59:00Z
    location: Bengaluru
    maxParticipants: 120
    teamSize: {min: 2, max: 4}
    contactEmail: team@codeforgood.in
    tags: [civic, open-data]
  - title: Build Bharat
    description: Open data for public good
    startDate: 2030-08-10T09:00:00Z
    endDate: 2030-08-11T18:00:00Z
    registrationDeadline: 2030-08-05T23:59:00Z
    location: Pune
    maxParticipants: 60
    contactEmail: hi@buildbharat.org
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "seed", "--file", path, "--approve")
	if err != nil {
		t.Fatalf("seed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "seeded 2 hackathons") {
		t.Errorf("output = %q", out)
	}
}

func TestSeedCommand_InvalidHackathon(t *testing.T) {
	t.Setenv("HACKHUB_DATABASE_DRIVER", "memory")
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("hackathons:\n  - title: Nameless\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, "seed", "--file", path); err == nil {
		t.Error("expected validation error")
	}
}
