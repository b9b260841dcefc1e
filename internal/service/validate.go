package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern = regexp.MustCompile(`^(\+91|91)?[6-9]\d{9}$`)
	urlPattern   = regexp.MustCompile(`^https?://.+`)
)

const (
	defaultTeamMin = 1
	defaultTeamMax = 4
)

// validate checks the `validate` tags on model types. Field names in errors
// are the json names, so paths read like "prizes[0].amount".
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	patterns := map[string]*regexp.Regexp{
		"legacy_email": emailPattern,
		"in_phone":     phonePattern,
		"web_url":      urlPattern,
	}
	for tag, re := range patterns {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

// collect merges validator failures into errs. prefix replaces the top-level
// struct name in each namespace, e.g. "member[2]".
func collect(errs fieldErrors, err error, prefix string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	for _, fe := range verrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		if prefix != "" {
			path = prefix + "." + path
		}
		errs.add(path, fieldMessage(fe))
	}
	return nil
}

// checkStruct validates v and returns a *ValidationError listing every failed
// field, or nil.
func checkStruct(v any) error {
	errs := fieldErrors{}
	if err := collect(errs, validate.Struct(v), ""); err != nil {
		return err
	}
	return errs.err()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "legacy_email":
		return "invalid email format"
	case "in_phone":
		return "invalid Indian phone number"
	case "web_url":
		return field + " must be a valid http(s) URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s cannot be less than %s", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must be before or on %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// normalizeMember trims every field, lowercases the email, compacts the phone
// number and drops blank or repeated skills while keeping their order.
func normalizeMember(m model.Member) model.Member {
	m.User = strings.TrimSpace(m.User)
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Phone = strings.Join(strings.Fields(m.Phone), "")
	m.College = strings.TrimSpace(m.College)
	m.Year = strings.TrimSpace(m.Year)
	m.Role = model.MemberRole(strings.ToLower(strings.TrimSpace(string(m.Role))))

	seen := make(map[string]bool, len(m.Skills))
	skills := make([]string, 0, len(m.Skills))
	for _, s := range m.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	m.Skills = skills
	return m
}

// validateTeamSize checks the member count against the hackathon's bounds.
func validateTeamSize(n int, size model.TeamSize) error {
	if err := validate.Var(n, fmt.Sprintf("min=%d,max=%d", size.Min, size.Max)); err != nil {
		return invalid("teamSize", fmt.Sprintf("team must have between %d and %d members", size.Min, size.Max))
	}
	return nil
}

// validateMembers checks every member and collects all failures. It also
// settles roles: with no roles given, the first member leads.
func validateMembers(members []model.Member) error {
	errs := fieldErrors{}
	for i := range members {
		if err := collect(errs, validate.Struct(members[i]), fmt.Sprintf("member[%d]", i)); err != nil {
			return err
		}
	}

	emails := make(map[string]int, len(members))
	leaders, roled := 0, 0
	for i, m := range members {
		path := fmt.Sprintf("member[%d].email", i)
		if _, bad := errs[path]; !bad && m.Email != "" {
			if first, dup := emails[m.Email]; dup {
				errs.add(path, fmt.Sprintf("email already used by member[%d]", first))
			} else {
				emails[m.Email] = i
			}
		}
		switch m.Role {
		case model.RoleLeader:
			leaders++
			roled++
		case model.RoleMember:
			roled++
		}
	}
	if roled > 0 && leaders != 1 {
		errs.add("members.leader", "exactly one member must be the team leader")
	}
	if err := errs.err(); err != nil {
		return err
	}

	for i := range members {
		switch {
		case roled == 0 && i == 0:
			members[i].Role = model.RoleLeader
		case members[i].Role == "":
			members[i].Role = model.RoleMember
		}
	}
	return nil
}

// validateHackathon checks the editable fields of h against their tags and
// the rules that span fields of different structs.
func validateHackathon(h *model.Hackathon) error {
	errs := fieldErrors{}
	if err := collect(errs, validate.Struct(h), ""); err != nil {
		return err
	}
	if h.MaxParticipants >= 1 && h.TeamSize.Min > h.MaxParticipants {
		errs.add("teamSize.min", "minimum team size cannot exceed max participants")
	}
	return errs.err()
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizePrizes(prizes []model.Prize) []model.Prize {
	out := make([]model.Prize, len(prizes))
	for i, p := range prizes {
		out[i] = model.Prize{
			Position:    strings.TrimSpace(p.Position),
			Amount:      strings.TrimSpace(p.Amount),
			Description: strings.TrimSpace(p.Description),
		}
	}
	return out
}
