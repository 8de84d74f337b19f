package repository

import (
	"context"
	"fmt"

	"gotera/internal/models"
)

// MemberRepository handles member operations against the GraphQL API
type MemberRepository struct {
	api         Executor
	defaultSize int
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(api Executor, defaultSize int) *MemberRepository {
	return &MemberRepository{api: api, defaultSize: defaultSize}
}

// List fetches one page of members matching filter. Page and limit default
// when omitted.
func (r *MemberRepository) List(ctx context.Context, filter models.MemberFilter, page models.PageRequest) (*models.MemberPage, error) {
	page = page.Normalize(r.defaultSize)
	vars := filter.Variables()
	vars["page"] = page.Page
	vars["limit"] = page.Limit

	var out struct {
		Members models.MemberPage `json:"members"`
	}
	if err := r.api.Do(ctx, OpGetMembers, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return &out.Members, nil
}

// Get fetches a single member
func (r *MemberRepository) Get(ctx context.Context, id string) (*models.Member, error) {
	var out struct {
		Member *models.Member `json:"member"`
	}
	if err := r.api.Do(ctx, OpGetMember, map[string]any{"id": id}, &out); err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if out.Member == nil {
		return nil, ErrNotFound
	}
	return out.Member, nil
}

// Create creates a member
func (r *MemberRepository) Create(ctx context.Context, input models.MemberInput) (*models.Member, error) {
	vars, err := withInput(input, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		CreateMember models.Member `json:"createMember"`
	}
	if err := r.api.Do(ctx, OpCreateMember, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return &out.CreateMember, nil
}

// Update updates a member
func (r *MemberRepository) Update(ctx context.Context, id string, input models.MemberInput) (*models.Member, error) {
	vars, err := withInput(input, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	var out struct {
		UpdateMember models.Member `json:"updateMember"`
	}
	if err := r.api.Do(ctx, OpUpdateMember, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return &out.UpdateMember, nil
}

// Delete deletes a member
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Do(ctx, OpDeleteMember, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// Promote gives a member login credentials with the given role code
func (r *MemberRepository) Promote(ctx context.Context, memberID, role string) (*models.Credentials, error) {
	var out struct {
		PromoteMember models.Credentials `json:"promoteMember"`
	}
	vars := map[string]any{"member_id": memberID, "role": role}
	if err := r.api.Do(ctx, OpPromoteMember, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to promote member: %w", err)
	}
	return &out.PromoteMember, nil
}

// PromoteMinistryLeader makes a member the leader of a ministry
func (r *MemberRepository) PromoteMinistryLeader(ctx context.Context, memberID, ministryID string) (*models.Credentials, error) {
	var out struct {
		PromoteMinistryLeader models.Credentials `json:"promoteMinistryLeader"`
	}
	vars := map[string]any{"member_id": memberID, "ministry_id": ministryID}
	if err := r.api.Do(ctx, OpPromoteMinistryLeader, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to promote ministry leader: %w", err)
	}
	return &out.PromoteMinistryLeader, nil
}

// ResetPassword issues a new one-time password for a user
func (r *MemberRepository) ResetPassword(ctx context.Context, userID string) (*models.Credentials, error) {
	var out struct {
		ResetPassword models.Credentials `json:"resetPassword"`
	}
	if err := r.api.Do(ctx, OpResetPassword, map[string]any{"user_id": userID}, &out); err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}
	return &out.ResetPassword, nil
}

// Transfer moves a member into another family
func (r *MemberRepository) Transfer(ctx context.Context, memberID, familyID string) (*models.Member, error) {
	var out struct {
		TransferMember models.Member `json:"transferMember"`
	}
	vars := map[string]any{"member_id": memberID, "family_id": familyID}
	if err := r.api.Do(ctx, OpTransferMember, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to transfer member: %w", err)
	}
	return &out.TransferMember, nil
}
