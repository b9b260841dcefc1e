package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/Shivanand-hulikatti/hackhub/internal/repository"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var now0 = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

var (
	student   = identity.Principal{UserID: "student-1", Role: identity.RoleStudent}
	organizer = identity.Principal{UserID: "organizer-1", Role: identity.RoleOrganizer}
	admin     = identity.Principal{UserID: "admin-1", Role: identity.RoleAdmin}
)

func newTestService(t *testing.T) (*HackathonService, *repository.MemoryHackathonStore, fakeClock) {
	t.Helper()
	store := repository.NewMemoryHackathonStore()
	clock := clockwork.NewFakeClockAt(now0)
	return NewHackathonService(store, clock, zerolog.Nop(), 3), store, clock
}

// seedHackathon stores an approved, open hackathon: registration closes in
// two days, the event starts in three. Capacity 10, teams of 2 to 3.
func seedHackathon(t *testing.T, store repository.HackathonStore, mutate func(h *model.Hackathon)) *model.Hackathon {
	t.Helper()
	h := &model.Hackathon{
		ID:                   uuid.NewString(),
		Title:                "Code for Good",
		Description:          "48 hours of civic tech",
		OrganizerID:          organizer.UserID,
		StartDate:            now0.Add(72 * time.Hour),
		EndDate:              now0.Add(120 * time.Hour),
		RegistrationDeadline: now0.Add(48 * time.Hour),
		Location:             "Bengaluru",
		MaxParticipants:      10,
		TeamSize:             model.TeamSize{Min: 2, Max: 3},
		Participants:         []string{},
		Teams:                []model.Team{},
		Status:               model.StatusUpcoming,
		IsApproved:           true,
		ContactEmail:         "team@codeforgood.in",
		CreatedAt:            now0,
		UpdatedAt:            now0,
	}
	if mutate != nil {
		mutate(h)
	}
	if err := store.Create(context.Background(), h); err != nil {
		t.Fatalf("seed hackathon: %v", err)
	}
	return h
}

func member(n int) model.Member {
	return model.Member{
		User:    fmt.Sprintf("user-%d", n),
		Name:    fmt.Sprintf("Member %d", n),
		Email:   fmt.Sprintf("member%d@example.com", n),
		Phone:   fmt.Sprintf("98765%05d", n),
		College: "IIT Bombay",
		Year:    "3rd Year",
		Skills:  []string{"Go", "React"},
	}
}

func members(from, n int) []model.Member {
	out := make([]model.Member, n)
	for i := range out {
		out[i] = member(from + i)
	}
	return out
}

func teamReq(name string, ms []model.Member) model.RegisterTeamRequest {
	return model.RegisterTeamRequest{TeamName: name, Members: ms}
}

func snapshot(t *testing.T, store repository.HackathonStore, id string) string {
	t.Helper()
	h, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	b, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRegisterTeam_Success(t *testing.T) {
	svc, store, _ := newTestService(t)
	h := seedHackathon(t, store, nil)

	got, err := svc.RegisterTeam(context.Background(), student, h.ID, teamReq("  Byte Me  ", members(1, 3)))
	if err != nil {
		t.Fatalf("RegisterTeam() error = %v", err)
	}
	if got.TeamName != "Byte Me" {
		t.Errorf("TeamName = %q, want trimmed name", got.TeamName)
	}
	if got.ParticipantCount != 3 || got.SpotsRemaining != 7 {
		t.Errorf("counts = %d/%d, want 3/7", got.ParticipantCount, got.SpotsRemaining)
	}
	if !got.RegisteredAt.Equal(now0) {
		t.Errorf("RegisteredAt = %v, want %v", got.RegisteredAt, now0)
	}
	if got.Members[0].Role != model.RoleLeader || got.Members[1].Role != model.RoleMember || got.Members[2].Role != model.RoleMember {
		t.Errorf("roles = %q/%q/%q, want leader/member/member", got.Members[0].Role, got.Members[1].Role, got.Members[2].Role)
	}

	stored, _ := store.Get(context.Background(), h.ID)
	if len(stored.Teams) != 1 || stored.Teams[0].ID != got.ID || stored.Teams[0].RegisteredBy != student.UserID {
		t.Errorf("stored teams = %+v", stored.Teams)
	}
	if stored.Version != 2 {
		t.Errorf("Version = %d, want 2", stored.Version)
	}
}

func TestRegisterTeam_CheckOrder(t *testing.T) {
	// Each case breaks its own check and every later one, so the error
	// proves which check ran first.
	tooManyBad := members(1, 4)
	for i := range tooManyBad {
		tooManyBad[i].Email = "nope"
	}

	tests := []struct {
		name      string
		mutate    func(h *model.Hackathon)
		id        string
		req       model.RegisterTeamRequest
		advance   time.Duration
		wantErr   error
		wantField string
	}{
		{
			name:    "not found beats everything",
			id:      "missing",
			req:     teamReq("", nil),
			wantErr: repository.ErrNotFound,
		},
		{
			name:    "unapproved is closed",
			mutate:  func(h *model.Hackathon) { h.IsApproved = false },
			req:     teamReq("", tooManyBad),
			wantErr: ErrRegistrationClosed,
		},
		{
			name:    "past deadline is closed",
			req:     teamReq("", tooManyBad),
			advance: 49 * time.Hour,
			wantErr: ErrRegistrationClosed,
		},
		{
			name:    "cancelled is closed",
			mutate:  func(h *model.Hackathon) { h.Status = model.StatusCancelled },
			req:     teamReq("", tooManyBad),
			wantErr: ErrRegistrationClosed,
		},
		{
			name:      "team name before team size",
			req:       teamReq("   ", tooManyBad),
			wantErr:   ErrValidation,
			wantField: "teamName",
		},
		{
			name:      "team size before member fields",
			req:       teamReq("Overflow", tooManyBad),
			wantErr:   ErrValidation,
			wantField: "teamSize",
		},
		{
			name:      "member fields before duplicates and capacity",
			mutate:    func(h *model.Hackathon) { h.MaxParticipants = 1 },
			req:       teamReq("Typos", []model.Member{member(1), {Name: "X", Email: "bad", Phone: "12345", College: "C", Year: "1"}}),
			wantErr:   ErrValidation,
			wantField: "member[1].email",
		},
		{
			name: "duplicates before capacity",
			mutate: func(h *model.Hackathon) {
				h.MaxParticipants = 3
				h.Teams = []model.Team{{ID: "t0", TeamName: "Existing", Members: members(1, 2)}}
			},
			req:     teamReq("Late", []model.Member{member(1), member(50)}),
			wantErr: ErrDuplicateMember,
		},
		{
			name:    "capacity last",
			mutate:  func(h *model.Hackathon) { h.MaxParticipants = 1 },
			req:     teamReq("Too Big", members(1, 2)),
			wantErr: ErrHackathonFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, clock := newTestService(t)
			h := seedHackathon(t, store, tt.mutate)
			id := h.ID
			if tt.id != "" {
				id = tt.id
			}
			before := snapshot(t, store, h.ID)
			clock.Advance(tt.advance)

			_, err := svc.RegisterTeam(context.Background(), student, id, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RegisterTeam() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantField != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error %T is not a *ValidationError", err)
				}
				if _, ok := verr.Fields[tt.wantField]; !ok {
					t.Errorf("fields = %v, want %q", verr.Fields, tt.wantField)
				}
			}
			if after := snapshot(t, store, h.ID); after != before {
				t.Errorf("rejected registration changed the record:\nbefore %s\nafter  %s", before, after)
			}
		})
	}
}

func TestRegisterTeam_CollectsAllMemberErrors(t *testing.T) {
	svc, store, _ := newTestService(t)
	h := seedHackathon(t, store, nil)

	req := teamReq("Messy", []model.Member{
		{Name: "", Email: "", Phone: "", College: "", Year: ""},
		{Name: "B", Email: "b@example", Phone: "5123456789", College: "C", Year: "2nd Year", Role: "captain"},
		{Name: "C", Email: "c@example.com", Phone: "+919876543210", College: "C", Year: "2nd Year"},
	})
	_, err := svc.RegisterTeam(context.Background(), student, h.ID, req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("RegisterTeam() error = %v, want *ValidationError", err)
	}
	want := []string{
		"member[0].name", "member[0].email", "member[0].phone", "member[0].college", "member[0].year",
		"member[1].email", "member[1].phone", "member[1].role",
	}
	for _, f := range want {
		if _, ok := verr.Fields[f]; !ok {
			t.Errorf("missing field error %q in %v", f, verr.Fields)
		}
	}
	for f := range verr.Fields {
		if len(f) > 9 && f[:9] == "member[2]" {
			t.Errorf("valid member[2] reported error %q: %s", f, verr.Fields[f])
		}
	}
}

func TestRegisterTeam_PhoneFormats(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"919876543210", true},
		{"98765 43210", true},
		{"5876543210", false},
		{"987654321", false},
		{"+449876543210", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			ms := []model.Member{normalizeMember(model.Member{Name: "A", Email: "a@example.com", Phone: tt.phone, College: "C", Year: "1"})}
			err := validateMembers(ms)
			if (err == nil) != tt.ok {
				t.Errorf("validateMembers(phone=%q) error = %v, want ok=%v", tt.phone, err, tt.ok)
			}
		})
	}
}

func TestRegisterTeam_Leaders(t *testing.T) {
	tests := []struct {
		name      string
		roles     []model.MemberRole
		wantField string
		wantRoles []model.MemberRole
	}{
		{"first leads by default", []model.MemberRole{"", ""}, "", []model.MemberRole{model.RoleLeader, model.RoleMember}},
		{"explicit leader kept", []model.MemberRole{"", "Leader"}, "", []model.MemberRole{model.RoleMember, model.RoleLeader}},
		{"two leaders", []model.MemberRole{model.RoleLeader, model.RoleLeader}, "members.leader", nil},
		{"roles without leader", []model.MemberRole{model.RoleMember, ""}, "members.leader", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)
			h := seedHackathon(t, store, nil)
			ms := members(1, len(tt.roles))
			for i, r := range tt.roles {
				ms[i].Role = r
			}

			got, err := svc.RegisterTeam(context.Background(), student, h.ID, teamReq("Roles", ms))
			if tt.wantField != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Fields[tt.wantField] == "" {
					t.Fatalf("RegisterTeam() error = %v, want field %q", err, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("RegisterTeam() error = %v", err)
			}
			for i, want := range tt.wantRoles {
				if got.Members[i].Role != want {
					t.Errorf("member[%d].Role = %q, want %q", i, got.Members[i].Role, want)
				}
			}
		})
	}
}

func TestRegisterTeam_Duplicates(t *testing.T) {
	ctx := context.Background()

	t.Run("user id in another team", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, nil)
		if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("First", members(1, 2))); err != nil {
			t.Fatal(err)
		}
		again := members(10, 2)
		again[1].User = "user-2"
		if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Second", again)); !errors.Is(err, ErrDuplicateMember) {
			t.Errorf("error = %v, want ErrDuplicateMember", err)
		}
	})

	t.Run("individual participant joins a team", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, func(h *model.Hackathon) { h.Participants = []string{"user-1"} })
		if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Team", members(1, 2))); !errors.Is(err, ErrDuplicateMember) {
			t.Errorf("error = %v, want ErrDuplicateMember", err)
		}
	})

	t.Run("guest email in another team", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, nil)
		first := members(1, 2)
		first[0].User = ""
		if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("First", first)); err != nil {
			t.Fatal(err)
		}
		second := members(10, 2)
		second[0].User = ""
		second[0].Email = "MEMBER1@example.com"
		if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Second", second)); !errors.Is(err, ErrDuplicateMember) {
			t.Errorf("error = %v, want ErrDuplicateMember", err)
		}
	})

	t.Run("same user twice in one request is allowed", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, nil)
		ms := members(1, 2)
		ms[1].User = ms[0].User
		if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Twins", ms)); err != nil {
			t.Errorf("error = %v, want success", err)
		}
	})

	t.Run("same email twice in one request", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, nil)
		ms := members(1, 2)
		ms[1].Email = ms[0].Email
		_, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Echo", ms))
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Fields["member[1].email"] == "" {
			t.Errorf("error = %v, want member[1].email validation error", err)
		}
	})

	t.Run("team name taken", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, nil)
		if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Alpha", members(1, 2))); err != nil {
			t.Fatal(err)
		}
		_, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("ALPHA", members(10, 2)))
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Fields["teamName"] == "" {
			t.Errorf("error = %v, want teamName validation error", err)
		}
	})
}

func TestRegisterTeam_CapacityExample(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	h := seedHackathon(t, store, func(h *model.Hackathon) {
		h.MaxParticipants = 4
		h.TeamSize = model.TeamSize{Min: 2, Max: 2}
	})

	if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("One", members(1, 2))); err != nil {
		t.Fatalf("first team: %v", err)
	}
	second, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Two", members(3, 2)))
	if err != nil {
		t.Fatalf("second team: %v", err)
	}
	if second.ParticipantCount != 4 || second.SpotsRemaining != 0 {
		t.Errorf("counts after second team = %d/%d, want 4/0", second.ParticipantCount, second.SpotsRemaining)
	}

	before := snapshot(t, store, h.ID)
	if _, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Three", members(5, 2))); !errors.Is(err, ErrHackathonFull) {
		t.Fatalf("third team error = %v, want ErrHackathonFull", err)
	}
	if snapshot(t, store, h.ID) != before {
		t.Error("full hackathon record changed after rejected registration")
	}
}

func TestRegisterTeam_TeamSizeIgnoresCapacity(t *testing.T) {
	for _, n := range []int{1, 4} {
		t.Run(fmt.Sprintf("%d members", n), func(t *testing.T) {
			svc, store, _ := newTestService(t)
			h := seedHackathon(t, store, func(h *model.Hackathon) { h.MaxParticipants = 10000 })
			_, err := svc.RegisterTeam(context.Background(), student, h.ID, teamReq("Sized", members(1, n)))
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Fields["teamSize"] == "" {
				t.Errorf("error = %v, want teamSize validation error", err)
			}
		})
	}
}

func TestRegisterTeam_ConcurrentNeverOvershoots(t *testing.T) {
	const (
		teamSize = 2
		capacity = 5
		attempts = capacity + 1
	)
	svc, store, _ := newTestService(t)
	h := seedHackathon(t, store, func(h *model.Hackathon) {
		h.MaxParticipants = capacity * teamSize
		h.TeamSize = model.TeamSize{Min: teamSize, Max: teamSize}
	})

	errs := make([]error, attempts)
	var g errgroup.Group
	for i := range attempts {
		g.Go(func() error {
			_, errs[i] = svc.RegisterTeam(context.Background(), student, h.ID,
				teamReq(fmt.Sprintf("Team %d", i), members(i*teamSize, teamSize)))
			return nil
		})
	}
	_ = g.Wait()

	var ok, full int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrHackathonFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != capacity || full != attempts-capacity {
		t.Errorf("successes/full = %d/%d, want %d/%d", ok, full, capacity, attempts-capacity)
	}

	stored, _ := store.Get(context.Background(), h.ID)
	if got := stored.ParticipantCount(); got != capacity*teamSize {
		t.Errorf("ParticipantCount = %d, want %d", got, capacity*teamSize)
	}
}

func TestRegisterTeam_ConcurrentAcrossProcesses(t *testing.T) {
	// Two services sharing one store stand in for two server processes: the
	// in-process lock does not help, only the version check does.
	const capacity = 4
	store := repository.NewMemoryHackathonStore()
	clock := clockwork.NewFakeClockAt(now0)
	a := NewHackathonService(store, clock, zerolog.Nop(), 10)
	b := NewHackathonService(store, clock, zerolog.Nop(), 10)
	h := seedHackathon(t, store, func(h *model.Hackathon) {
		h.MaxParticipants = capacity * 2
		h.TeamSize = model.TeamSize{Min: 2, Max: 2}
	})

	var ok atomic.Int32
	var g errgroup.Group
	for i := range 8 {
		svc := a
		if i%2 == 1 {
			svc = b
		}
		g.Go(func() error {
			_, err := svc.RegisterTeam(context.Background(), student, h.ID,
				teamReq(fmt.Sprintf("Team %d", i), members(i*2, 2)))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrHackathonFull), errors.Is(err, ErrConflict):
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := store.Get(context.Background(), h.ID)
	if got := stored.ParticipantCount(); got > capacity*2 {
		t.Fatalf("ParticipantCount = %d exceeds capacity %d", got, capacity*2)
	}
	if int(ok.Load()) != len(stored.Teams) {
		t.Errorf("%d successes but %d stored teams", ok.Load(), len(stored.Teams))
	}
}

// conflictingStore fails the first n compare-and-swaps as if another
// process had written in between.
type conflictingStore struct {
	repository.HackathonStore
	remaining atomic.Int32
	calls     atomic.Int32
}

func (s *conflictingStore) CompareAndSwap(ctx context.Context, id string, v int64, h *model.Hackathon) error {
	s.calls.Add(1)
	if s.remaining.Add(-1) >= 0 {
		return repository.ErrVersionConflict
	}
	return s.HackathonStore.CompareAndSwap(ctx, id, v, h)
}

func TestRegisterTeam_RetriesVersionConflicts(t *testing.T) {
	tests := []struct {
		conflicts int32
		wantErr   error
		wantCalls int32
	}{
		{conflicts: 2, wantErr: nil, wantCalls: 3},
		{conflicts: 3, wantErr: ErrConflict, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d conflicts", tt.conflicts), func(t *testing.T) {
			mem := repository.NewMemoryHackathonStore()
			store := &conflictingStore{HackathonStore: mem}
			store.remaining.Store(tt.conflicts)
			svc := NewHackathonService(store, clockwork.NewFakeClockAt(now0), zerolog.Nop(), 3)
			h := seedHackathon(t, mem, nil)

			_, err := svc.RegisterTeam(context.Background(), student, h.ID, teamReq("Retry", members(1, 2)))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RegisterTeam() error = %v, want %v", err, tt.wantErr)
			}
			if got := store.calls.Load(); got != tt.wantCalls {
				t.Errorf("CompareAndSwap calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRegisterTeam_ReleasesLocks(t *testing.T) {
	svc, store, _ := newTestService(t)
	h := seedHackathon(t, store, nil)
	_, _ = svc.RegisterTeam(context.Background(), student, h.ID, teamReq("A", members(1, 2)))
	_, _ = svc.RegisterTeam(context.Background(), student, h.ID, teamReq("", nil))
	if n := svc.locks.size(); n != 0 {
		t.Errorf("%d lock entries left behind", n)
	}
}

func TestRegisterParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("register and unregister", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, nil)

		v, err := svc.RegisterParticipant(ctx, student, h.ID)
		if err != nil {
			t.Fatalf("RegisterParticipant() error = %v", err)
		}
		if v.ParticipantCount != 1 {
			t.Errorf("ParticipantCount = %d, want 1", v.ParticipantCount)
		}
		if _, err := svc.RegisterParticipant(ctx, student, h.ID); !errors.Is(err, ErrDuplicateMember) {
			t.Errorf("second RegisterParticipant() error = %v, want ErrDuplicateMember", err)
		}

		if err := svc.UnregisterParticipant(ctx, student, h.ID); err != nil {
			t.Fatalf("UnregisterParticipant() error = %v", err)
		}
		stored, _ := store.Get(ctx, h.ID)
		if len(stored.Participants) != 0 {
			t.Errorf("participants = %v, want empty", stored.Participants)
		}

		version := stored.Version
		if err := svc.UnregisterParticipant(ctx, student, h.ID); err != nil {
			t.Fatalf("UnregisterParticipant() when absent error = %v", err)
		}
		if again, _ := store.Get(ctx, h.ID); again.Version != version {
			t.Error("no-op unregister wrote the record")
		}
	})

	t.Run("full", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		h := seedHackathon(t, store, func(h *model.Hackathon) {
			h.MaxParticipants = 2
			h.Teams = []model.Team{{ID: "t", TeamName: "T", Members: members(1, 2)}}
		})
		if _, err := svc.RegisterParticipant(ctx, student, h.ID); !errors.Is(err, ErrHackathonFull) {
			t.Errorf("error = %v, want ErrHackathonFull", err)
		}
	})

	t.Run("closed", func(t *testing.T) {
		svc, store, clock := newTestService(t)
		h := seedHackathon(t, store, nil)
		clock.Advance(49 * time.Hour)
		if _, err := svc.RegisterParticipant(ctx, student, h.ID); !errors.Is(err, ErrRegistrationClosed) {
			t.Errorf("error = %v, want ErrRegistrationClosed", err)
		}
	})
}

func TestTeams_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	h := seedHackathon(t, store, nil)
	reg, err := svc.RegisterTeam(ctx, student, h.ID, teamReq("Alpha", members(1, 2)))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ListTeams(ctx, student, h.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("student ListTeams() error = %v, want ErrForbidden", err)
	}
	teams, err := svc.ListTeams(ctx, organizer, h.ID)
	if err != nil || len(teams) != 1 {
		t.Fatalf("ListTeams() = %v, %v", teams, err)
	}

	if err := svc.DeleteTeam(ctx, student, h.ID, reg.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("student DeleteTeam() error = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteTeam(ctx, admin, h.ID, "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("DeleteTeam(unknown) error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteTeam(ctx, admin, h.ID, reg.ID); err != nil {
		t.Fatalf("DeleteTeam() error = %v", err)
	}
	stored, _ := store.Get(ctx, h.ID)
	if len(stored.Teams) != 0 {
		t.Errorf("teams after delete = %d, want 0", len(stored.Teams))
	}
}
