package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gotera/internal/models"
	"gotera/internal/security"
	"gotera/internal/validation"
)

var (
	ErrMinistryRequired = errors.New("select a ministry for the ministry leader")
	ErrInvalidRole      = errors.New("select a valid role")
	ErrNoLogin          = errors.New("member has no login account")
)

// MemberStore is the member API surface the service drives.
type MemberStore interface {
	Create(ctx context.Context, input models.MemberInput) (*models.Member, error)
	Update(ctx context.Context, id string, input models.MemberInput) (*models.Member, error)
	Promote(ctx context.Context, memberID, role string) (*models.Credentials, error)
	PromoteMinistryLeader(ctx context.Context, memberID, ministryID string) (*models.Credentials, error)
	ResetPassword(ctx context.Context, userID string) (*models.Credentials, error)
	Transfer(ctx context.Context, memberID, familyID string) (*models.Member, error)
}

// CredentialsMailer delivers a one-time password to a member.
type CredentialsMailer interface {
	IsEnabled() bool
	SendCredentialsEmail(ctx context.Context, toEmail, toName, phone, password string) error
}

// CredentialsResult is the outcome of a promotion or password reset.
type CredentialsResult struct {
	Password string
	Emailed  bool
}

// MemberService applies member form rules before calling the API
type MemberService struct {
	members   MemberStore
	mailer    CredentialsMailer
	validator *validation.Validator
}

// NewMemberService creates a new member service. mailer may be nil.
func NewMemberService(members MemberStore, mailer CredentialsMailer, validator *validation.Validator) *MemberService {
	return &MemberService{members: members, mailer: mailer, validator: validator}
}

// Save creates a member when id is empty and updates it otherwise.
func (s *MemberService) Save(ctx context.Context, id string, in models.MemberInput) (*models.Member, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if id == "" {
		return s.members.Create(ctx, in)
	}
	return s.members.Update(ctx, id, in)
}

// Promote grants member a role. Ministry leaders need a ministry and are
// promoted through the ministry-leader mutation; any other role goes through
// the generic promotion.
func (s *MemberService) Promote(ctx context.Context, member models.Member, role security.Role, ministryID string) (*CredentialsResult, error) {
	if role == security.RoleUnknown {
		return nil, ErrInvalidRole
	}

	var (
		creds *models.Credentials
		err   error
	)
	if role == security.RoleMinistryLeader {
		ministryID = strings.TrimSpace(ministryID)
		if ministryID == "" {
			return nil, ErrMinistryRequired
		}
		creds, err = s.members.PromoteMinistryLeader(ctx, member.ID, ministryID)
	} else {
		creds, err = s.members.Promote(ctx, member.ID, string(role))
	}
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, member, creds), nil
}

// ResetPassword issues a new one-time password for member's login.
func (s *MemberService) ResetPassword(ctx context.Context, member models.Member) (*CredentialsResult, error) {
	if !member.HasLogin() {
		return nil, ErrNoLogin
	}
	creds, err := s.members.ResetPassword(ctx, member.User.ID)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, member, creds), nil
}

// Transfer moves a member to another family.
func (s *MemberService) Transfer(ctx context.Context, memberID, familyID string) (*models.Member, error) {
	if strings.TrimSpace(familyID) == "" {
		return nil, validation.Errors{"family_id": "Family is required"}
	}
	return s.members.Transfer(ctx, memberID, familyID)
}

func (s *MemberService) deliver(ctx context.Context, member models.Member, creds *models.Credentials) *CredentialsResult {
	res := &CredentialsResult{}
	if creds != nil {
		res.Password = creds.Password
	}
	if res.Password == "" || member.Email == "" || s.mailer == nil || !s.mailer.IsEnabled() {
		return res
	}
	if err := s.mailer.SendCredentialsEmail(ctx, member.Email, member.FullName, member.Phone, res.Password); err != nil {
		slog.WarnContext(ctx, "Failed to email credentials", "member_id", member.ID, "error", err)
		return res
	}
	res.Emailed = true
	return res
}
