package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmate/backend/internal/domain"
)

// sharedTrip returns a trip with one editor and one viewer besides the owner.
func sharedTrip() (trip domain.Trip, owner, editor, viewer uuid.UUID) {
	owner, editor, viewer = uuid.New(), uuid.New(), uuid.New()
	trip = domain.Trip{
		ID:      uuid.New(),
		Title:   "Portugal",
		OwnerID: owner,
		Members: []domain.Member{
			{UserID: editor, Role: domain.RoleEditor},
			{UserID: viewer, Role: domain.RoleViewer},
		},
	}
	return trip, owner, editor, viewer
}

// ---- policy ----------------------------------------------------------------

func TestTrip_IsMember(t *testing.T) {
	trip, owner, editor, viewer := sharedTrip()

	assert.True(t, trip.IsMember(owner))
	assert.True(t, trip.IsMember(editor))
	assert.True(t, trip.IsMember(viewer))
	assert.False(t, trip.IsMember(uuid.New()))
}

func TestTrip_CanEdit(t *testing.T) {
	trip, owner, editor, viewer := sharedTrip()

	assert.True(t, trip.CanEdit(owner))
	assert.True(t, trip.CanEdit(editor))
	assert.False(t, trip.CanEdit(viewer), "viewers are read-only")
	assert.False(t, trip.CanEdit(uuid.New()))
}

func TestTrip_CanEditImpliesIsMember(t *testing.T) {
	trip, owner, editor, viewer := sharedTrip()

	for _, id := range []uuid.UUID{owner, editor, viewer, uuid.New()} {
		if trip.CanEdit(id) {
			assert.True(t, trip.IsMember(id), "every editor must also be a member")
		}
	}
}

// ---- AddMember -------------------------------------------------------------

func TestTrip_AddMember(t *testing.T) {
	trip, _, _, _ := sharedTrip()
	newUser := uuid.New()

	err := trip.AddMember(newUser, domain.RoleViewer)

	require.NoError(t, err)
	assert.True(t, trip.MemberWith(newUser))
	assert.False(t, trip.CanEdit(newUser))
}

func TestTrip_AddMember_DefaultsToEditor(t *testing.T) {
	trip, _, _, _ := sharedTrip()
	newUser := uuid.New()

	err := trip.AddMember(newUser, "")

	require.NoError(t, err)
	assert.True(t, trip.CanEdit(newUser))
}

func TestTrip_AddMember_Duplicate(t *testing.T) {
	trip, _, editor, _ := sharedTrip()

	err := trip.AddMember(editor, domain.RoleViewer)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, trip.Members, 2, "members list must be unchanged")
}

func TestTrip_AddMember_Owner(t *testing.T) {
	trip, owner, _, _ := sharedTrip()

	err := trip.AddMember(owner, domain.RoleEditor)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTrip_AddMember_UnknownRole(t *testing.T) {
	trip, _, _, _ := sharedTrip()

	err := trip.AddMember(uuid.New(), "admin")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- RemoveMember ----------------------------------------------------------

func TestTrip_RemoveMember(t *testing.T) {
	trip, _, editor, viewer := sharedTrip()

	trip.RemoveMember(editor)

	assert.False(t, trip.MemberWith(editor))
	assert.True(t, trip.MemberWith(viewer))
}

func TestTrip_RemoveMember_Idempotent(t *testing.T) {
	trip, _, editor, _ := sharedTrip()

	trip.RemoveMember(editor)
	before := len(trip.Members)
	trip.RemoveMember(editor) // second removal is a no-op

	assert.Len(t, trip.Members, before)
}

func TestTrip_RemoveMember_NotAMember(t *testing.T) {
	trip, _, _, _ := sharedTrip()

	trip.RemoveMember(uuid.New())

	assert.Len(t, trip.Members, 2)
}

// ---- MemberRole ------------------------------------------------------------

func TestMemberRole_Valid(t *testing.T) {
	assert.True(t, domain.RoleEditor.Valid())
	assert.True(t, domain.RoleViewer.Valid())
	assert.False(t, domain.MemberRole("owner").Valid())
	assert.False(t, domain.MemberRole("").Valid())
}
