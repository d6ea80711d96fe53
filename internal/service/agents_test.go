package service

import (
	"context"
	"testing"

	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
	"github.com/pmsadmin/console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAgentService(f *storeFixture) *AgentService {
	return NewAgentService(AgentServiceOptions{API: f.api, Store: f.store, Logger: discardLogger()})
}

func TestAgentService_UsesSessionAdminCredential(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	f.seedAdmin(t)
	svc := newAgentService(f)

	f.api.EXPECT().AddAgent(gomock.Any(), ports.AgentInput{
		Credential: "admin-tok", BusinessID: "b1", Email: "agent@shop.io",
	}).Return(nil)
	require.NoError(t, svc.AddAgent(ctx, "b1", " agent@shop.io "))

	agents := []model.Agent{testutil.NewAgent("a1", "agent@shop.io")}
	f.api.EXPECT().ListBusinessAgents(gomock.Any(), "admin-tok", "b1").Return(agents, nil)
	got, err := svc.ListBusinessAgents(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, agents, got)

	f.api.EXPECT().RemoveAgent(gomock.Any(), ports.AgentInput{
		Credential: "admin-tok", BusinessID: "b1", AgentID: "a1",
	}).Return(nil)
	require.NoError(t, svc.RemoveAgent(ctx, "b1", "a1"))

	found := []model.DetailedBusiness{testutil.NewBusiness("b1").Build()}
	f.api.EXPECT().SearchAgentBusinesses(gomock.Any(), "admin-tok", "agent@shop.io").Return(found, nil)
	businesses, err := svc.SearchAgentBusinesses(ctx, "agent@shop.io")
	require.NoError(t, err)
	assert.Equal(t, found, businesses)
}

func TestAgentService_Validation(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	f.seedAdmin(t)
	svc := newAgentService(f)

	err := svc.AddAgent(ctx, "b1", "nope")
	assert.Equal(t, "email", apperrors.GetField(err))

	err = svc.AddAgent(ctx, "", "a@b.co")
	assert.Equal(t, "business_id", apperrors.GetField(err))

	_, err = svc.SearchAgentBusinesses(ctx, "  ")
	assert.Equal(t, "Please enter an agent email", apperrors.GetMessage(err))

	err = svc.RemoveAgent(ctx, "b1", "")
	assert.Equal(t, "agent_id", apperrors.GetField(err))
}

func TestAgentService_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	require.NoError(t, f.store.Initialize(ctx))

	_, err := newAgentService(f).ListBusinessAgents(ctx, "b1")
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAgentService_APIFailurePropagates(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	f.seedAdmin(t)
	f.api.EXPECT().AddAgent(gomock.Any(), gomock.Any()).Return(apperrors.Upstream("agent already exists"))

	err := newAgentService(f).AddAgent(ctx, "b1", "agent@shop.io")
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, "agent already exists", apperrors.GetMessage(err))
}
